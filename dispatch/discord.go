package dispatch

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// closeAuthenticationFailed is the gateway close code for a rejected token.
const closeAuthenticationFailed = 4004

var errHandshakeAborted = errors.New("gateway handshake aborted")

// DiscordDialer creates discordgo-backed gateways.
type DiscordDialer struct {
	// Intents requested when identifying. Guilds is enough to populate the
	// channel cache from the ready payload.
	Intents discordgo.Intent
}

func NewDiscordDialer() *DiscordDialer {
	return &DiscordDialer{Intents: discordgo.IntentsGuilds}
}

func (d *DiscordDialer) Dial(token string) (Gateway, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	s, err := discordgo.New(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}
	s.Identify.Intents = d.Intents
	s.ShouldReconnectOnError = false
	s.StateEnabled = true

	g := &discordGateway{session: s}

	// session.Open has no context; owning the socket lets Open abort the
	// handshake when its context ends.
	wsDialer := *s.Dialer
	wsDialer.NetDialContext = g.dialContext
	s.Dialer = &wsDialer

	return g, nil
}

type discordGateway struct {
	session *discordgo.Session

	openOnce  sync.Once
	ready     chan struct{}
	closeOnce sync.Once
	opened    bool

	connMu  sync.Mutex
	conns   []net.Conn
	aborted bool
}

func (g *discordGateway) Authenticate(ctx context.Context) error {
	if _, err := g.session.User("@me", discordgo.WithContext(ctx)); err != nil {
		return translateDiscordError(err)
	}
	return nil
}

func (g *discordGateway) Open(ctx context.Context) error {
	g.openOnce.Do(func() {
		g.ready = make(chan struct{})
		ready := g.ready
		g.session.AddHandlerOnce(func(_ *discordgo.Session, _ *discordgo.Ready) {
			close(ready)
		})
	})

	result := make(chan error, 1)
	go func() { result <- g.session.Open() }()

	select {
	case err := <-result:
		if err != nil {
			return translateDiscordError(err)
		}
	case <-ctx.Done():
		g.abortHandshake()
		go func() {
			if err := <-result; err == nil {
				_ = g.session.Close()
			}
		}()
		return errors.Wrap(ctx.Err(), "waiting for ready")
	}
	g.opened = true

	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for ready")
	}
}

func (g *discordGateway) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	g.connMu.Lock()
	defer g.connMu.Unlock()

	if g.aborted {
		_ = conn.Close()
		return nil, errHandshakeAborted
	}
	g.conns = append(g.conns, conn)
	return conn, nil
}

// abortHandshake closes the gateway sockets so a blocked session.Open
// returns, and refuses any later dial.
func (g *discordGateway) abortHandshake() {
	g.connMu.Lock()
	defer g.connMu.Unlock()

	g.aborted = true
	for _, c := range g.conns {
		_ = c.Close()
	}
	g.conns = nil
}

func (g *discordGateway) Channel(ctx context.Context, channelID string) (*Channel, error) {
	if g.session.State != nil {
		if ch, err := g.session.State.Channel(channelID); err == nil {
			return toChannel(ch), nil
		}
	}

	ch, err := g.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateDiscordError(err)
	}
	return toChannel(ch), nil
}

func (g *discordGateway) Send(ctx context.Context, channelID string, p *Payload) (string, error) {
	data := &discordgo.MessageSend{Content: p.Content}
	if p.Attachment != nil {
		data.Files = []*discordgo.File{{
			Name:   p.Attachment.Name,
			Reader: p.Attachment.Reader,
		}}
	}

	msg, err := g.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateDiscordError(err)
	}
	return msg.ID, nil
}

func (g *discordGateway) Close() error {
	var err error
	g.closeOnce.Do(func() {
		if g.opened {
			err = g.session.Close()
		}
	})
	return err
}

func toChannel(ch *discordgo.Channel) *Channel {
	return &Channel{ID: ch.ID, Name: ch.Name, GuildID: ch.GuildID}
}

// translateDiscordError maps discordgo failures onto the dispatch error
// taxonomy.
func translateDiscordError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownChannel {
			return errors.Wrap(ErrChannelNotFound, restErr.Message.Message)
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusUnauthorized:
				return errors.Wrap(ErrAuthentication, "discord rejected the bot token")
			case http.StatusNotFound:
				return errors.Wrap(ErrChannelNotFound, "discord returned 404")
			}
		}
		if restErr.Message != nil && restErr.Message.Message != "" {
			return errors.Errorf("discord: %s (code %d)", restErr.Message.Message, restErr.Message.Code)
		}
		return err
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) && closeErr.Code == closeAuthenticationFailed {
		return errors.Wrap(ErrAuthentication, "gateway closed: authentication failed")
	}

	return err
}
