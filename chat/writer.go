// Package chat holds notifiers that don't talk to a chat service.
package chat

import (
	"context"
	"fmt"
	"io"
)

// WriterNotifier prints messages to w instead of posting them, used for
// dry runs.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Post(_ context.Context, message string) error {
	_, err := fmt.Fprintln(n.W, message)
	return err
}
