package handler

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler serves API Gateway proxy events through the Dispatcher.
// flush, when set, runs before the response is returned: the runtime freezes
// the environment afterwards, so background work must be finished by then.
func LambdaHandler(d *Dispatcher, flush func()) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		body := req.Body
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				// left undecoded, the body fails JSON parsing and gets a 400
				decoded = []byte(req.Body)
			}
			body = string(decoded)
		}

		resp := d.Dispatch(ctx, &Request{
			Method: req.HTTPMethod,
			Path:   req.Path,
			Query:  lambdaQuery(req),
			Body:   strings.NewReader(body),
		})
		if flush != nil {
			flush()
		}

		headers := make(map[string]string, len(resp.Header))
		for key := range resp.Header {
			headers[key] = resp.Header.Get(key)
		}
		return events.APIGatewayProxyResponse{
			StatusCode: resp.Status,
			Headers:    headers,
			Body:       string(resp.Body),
		}, nil
	}
}

func lambdaQuery(req events.APIGatewayProxyRequest) url.Values {
	q := url.Values{}
	for key, values := range req.MultiValueQueryStringParameters {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	for key, v := range req.QueryStringParameters {
		if _, ok := q[key]; !ok {
			q.Set(key, v)
		}
	}
	return q
}
