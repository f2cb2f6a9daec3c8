package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PutObjectAPI is the subset of *s3.Client used by Archive.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive keeps a copy of every delivered message in S3.
type Archive struct {
	next   Notifier
	client PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewArchive(next Notifier, client PutObjectAPI, bucket string) *Archive {
	return &Archive{next: next, client: client, bucket: bucket, now: time.Now}
}

func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Send delivers first. Archiving failures are logged but do not fail the
// delivery, so a message is never sent twice because its copy was lost.
func (a *Archive) Send(ctx context.Context, msg Message) error {
	if err := a.next.Send(ctx, msg); err != nil {
		return err
	}

	key := fmt.Sprintf("mail/%s/%s.txt", a.now().UTC().Format("2006-01-02"), uuid.NewString())
	body := fmt.Sprintf("To: %s\nSubject: %s\n\n%s\n", msg.To, msg.Subject, msg.Body)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		ContentType: aws.String("text/plain; charset=utf-8"),
		Body:        strings.NewReader(body),
	})
	if err != nil {
		log.Printf("failed to archive mail to %s: %v", msg.To, err)
	}
	return nil
}
