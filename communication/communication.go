package communication

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Communicator exchanges framed messages with one peer.
type Communicator interface {
	Send(v any) error
	Receive(v any) error
}

// Conn is a Communicator over a pair of streams. Traffic is logged at debug level.
type Conn struct {
	peer string
	r    *Reader
	w    *Writer
}

func NewConn(peer string, r io.Reader, w io.Writer) *Conn {
	return &Conn{peer: peer, r: NewReader(r), w: NewWriter(w)}
}

func (c *Conn) Send(v any) error {
	frame, err := c.w.Write(v)
	if err != nil {
		return fmt.Errorf("send to %s: %w", c.peer, err)
	}
	log.Debug().Msgf("%s > %s", c.peer, frame)
	return nil
}

// Receive blocks until a whole message has arrived. io.EOF is returned unwrapped if the peer closed
// the stream between messages.
func (c *Conn) Receive(v any) error {
	payload, err := c.r.Read(v)
	if err == io.EOF {
		return err
	}
	if err != nil {
		return fmt.Errorf("receive from %s: %w", c.peer, err)
	}
	log.Debug().Msgf("%s < %s", c.peer, payload)
	return nil
}

// Greet performs the punter side of the handshake.
func Greet(c Communicator, name string) error {
	if err := c.Send(Me{Me: name}); err != nil {
		return err
	}
	var you You
	if err := c.Receive(&you); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if you.You != name {
		log.Warn().Msgf("handshake answered %q, expected %q", you.You, name)
	}
	return nil
}

// Welcome performs the runner side of the handshake and returns the punter's name.
func Welcome(c Communicator) (string, error) {
	var me Me
	if err := c.Receive(&me); err != nil {
		return "", fmt.Errorf("handshake: %w", err)
	}
	if err := c.Send(You{You: me.Me}); err != nil {
		return "", err
	}
	return me.Me, nil
}
