package service

import (
	"context"
	"fmt"
)

// EchoReplier is the canned reply generator: it restates the user's message.
// It stands in for a real conversational backend behind ports.ReplyGenerator.
type EchoReplier struct{}

func NewEchoReplier() *EchoReplier {
	return &EchoReplier{}
}

func (EchoReplier) Reply(_ context.Context, content string) (string, error) {
	return fmt.Sprintf("Hi there, you said: '%s'", content), nil
}
