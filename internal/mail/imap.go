package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	msgmail "github.com/emersion/go-message/mail"
	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/logging"
)

const (
	DefaultIMAPHost = "imap.gmail.com"
	DefaultIMAPPort = 993
)

// IMAPFetcher reads the INBOX over implicit TLS.
type IMAPFetcher struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

type contextDialer struct {
	ctx context.Context
	net.Dialer
}

func (d *contextDialer) Dial(network, addr string) (net.Conn, error) {
	return d.DialContext(d.ctx, network, addr)
}

// Fetch implements Fetcher. Messages that fail to parse are skipped.
func (f *IMAPFetcher) Fetch(ctx context.Context, creds Credentials, max int) ([]Email, error) {
	creds = creds.Resolve(Credentials{Host: DefaultIMAPHost, Port: DefaultIMAPPort})
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	logger := logging.OrDiscard(f.Logger).WithFields(logrus.Fields{
		"host": creds.Host,
		"port": creds.Port,
	})

	addr := net.JoinHostPort(creds.Host, strconv.Itoa(creds.Port))
	logger.Debug("connecting to IMAP server")
	c, err := client.DialWithDialerTLS(&contextDialer{ctx: ctx, Dialer: net.Dialer{Timeout: f.Timeout}}, addr, nil)
	if err != nil {
		return nil, &TransportError{Protocol: IMAP, Err: err}
	}
	c.Timeout = f.Timeout
	defer func() {
		if err := c.Logout(); err != nil {
			logger.WithError(err).Warn("error closing IMAP connection")
		}
	}()

	if err := c.Login(creds.Account, creds.Secret); err != nil {
		return nil, &TransportError{Protocol: IMAP, Err: err}
	}
	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, &TransportError{Protocol: IMAP, Err: fmt.Errorf("failed to select inbox: %w", err)}
	}
	logger.WithField("total", mbox.Messages).Debug("inbox selected")
	if mbox.Messages == 0 || max <= 0 {
		return nil, nil
	}

	from, to := lastN(mbox.Messages, max)
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, to)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, to-from+1)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var emails []Email
	var seqs []uint32
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			logger.WithField("id", msg.SeqNum).Warn("no data for email")
			continue
		}
		e, err := parseMessage(body)
		if err != nil {
			logger.WithField("id", msg.SeqNum).WithError(err).Warn("failed to parse email")
			continue
		}
		e.ID = strconv.FormatUint(uint64(msg.SeqNum), 10)
		emails = append(emails, e)
		seqs = append(seqs, msg.SeqNum)
	}
	if err := <-done; err != nil {
		return nil, &TransportError{Protocol: IMAP, Err: err}
	}

	sort.Sort(newestFirst{emails, seqs})
	logger.WithField("count", len(emails)).Info("fetched emails")
	return emails, nil
}

// lastN returns the sequence range of the newest max messages in a mailbox
// holding total. Both total and max must be positive.
func lastN(total uint32, max int) (from, to uint32) {
	n := total
	if uint64(max) < uint64(total) {
		n = uint32(max)
	}
	return total - n + 1, total
}

type newestFirst struct {
	emails []Email
	seqs   []uint32
}

func (n newestFirst) Len() int           { return len(n.emails) }
func (n newestFirst) Less(i, j int) bool { return n.seqs[i] > n.seqs[j] }
func (n newestFirst) Swap(i, j int) {
	n.emails[i], n.emails[j] = n.emails[j], n.emails[i]
	n.seqs[i], n.seqs[j] = n.seqs[j], n.seqs[i]
}

// parseMessage reads an RFC 5322 message and keeps the first non-attachment
// text/plain part as the body.
func parseMessage(r io.Reader) (Email, error) {
	mr, err := msgmail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return Email{}, err
	}
	defer mr.Close()

	e := Email{From: "Unknown", Subject: "No Subject"}
	if subject, err := mr.Header.Subject(); err == nil && subject != "" {
		e.Subject = subject
	}
	if from := mr.Header.Get("From"); from != "" {
		e.From = from
	}

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return e, err
		}
		h, ok := p.Header.(*msgmail.InlineHeader)
		if !ok {
			continue
		}
		if ct, _, _ := h.ContentType(); ct != "" && ct != "text/plain" {
			continue
		}
		b, err := io.ReadAll(p.Body)
		if err != nil {
			return e, err
		}
		e.Body = strings.TrimSpace(string(b))
		break
	}
	return e, nil
}
