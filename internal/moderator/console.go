package moderator

import (
	"context"
	"fmt"
	"io"
)

// ConsoleTransport writes replies to an io.Writer. It stands in for a
// real chat transport in CLI use and in tests.
type ConsoleTransport struct {
	W io.Writer
}

func (t ConsoleTransport) Reply(_ context.Context, chatID, messageID, text string) error {
	_, err := fmt.Fprintf(t.W, "[chat %s, reply to %s]\n%s\n", chatID, messageID, text)
	return err
}
