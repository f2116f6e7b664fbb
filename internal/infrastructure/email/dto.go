package email

import "strings"

// ConfirmationCodeData là nội dung email gửi mã xác nhận sign-up
type ConfirmationCodeData struct {
	Email     string
	Code      string
	ExpiresIn string
}

// Message là email đã render, sẵn sàng gửi
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Bytes render message theo RFC 5322 (plain text)
func (m Message) Bytes() []byte {
	return []byte("From: " + m.From + "\r\n" +
		"To: " + strings.Join(m.To, ", ") + "\r\n" +
		"Subject: " + m.Subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" + m.Body)
}
