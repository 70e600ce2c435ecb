package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// ErrSendFailed возвращается при ошибке отправки письма
// Вызывающий код обязан логировать её и продолжать работу:
// упавшая рассылка никогда не откатывает уже созданное бронирование
var ErrSendFailed = errors.New("mailer: failed to send message")

// Mailer интерфейс отправки уведомлений
// Реализация выбирается один раз при старте процесса (SMTP или no-op)
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// SMTPMailer отправитель писем через SMTP (go-mail)
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer создает SMTP отправитель
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithPort(port),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// Send отправляет письмо всем получателям
func (m *SMTPMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%w: invalid from address: %v", ErrSendFailed, err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("%w: invalid recipient: %v", ErrSendFailed, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

// NopMailer отправитель-заглушка для dev/test окружений
type NopMailer struct{}

// NewNopMailer создает no-op отправитель
func NewNopMailer() *NopMailer {
	return &NopMailer{}
}

// Send ничего не отправляет
func (m *NopMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	return nil
}
