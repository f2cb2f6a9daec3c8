package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"

	"varal-dos-sonhos/app"
	"varal-dos-sonhos/config"
	"varal-dos-sonhos/handler"
)

var application *app.App

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	application, err = app.New(context.Background(), cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize: %v", err))
	}
}

func main() {
	lambda.Start(handler.LambdaHandler(application.Dispatcher, application.Flush))
}
