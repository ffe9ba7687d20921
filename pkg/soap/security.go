package soap

import (
	"crypto/sha1"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

const (
	passwordDigestType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	base64EncodingType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"

	// wssCreatedFormat is the timestamp layout mandated by WS-Security.
	wssCreatedFormat = "2006-01-02T15:04:05.000Z"
)

// Credentials holds the EUDR web service username and authentication key.
type Credentials struct {
	Username string
	Password string
}

// SecurityOptions controls WS-Security header construction. The zero
// value uses the current time, a random nonce, and a 2 minute timestamp
// validity, which is what production callers want; tests inject Now and
// Nonce for deterministic output.
type SecurityOptions struct {
	Credentials Credentials
	TokenTTL    time.Duration
	Now         func() time.Time
	Nonce       func() []byte
}

// AddSecurity appends a wsse:Security header with a Timestamp and a
// digest-mode UsernameToken.
func (e *Envelope) AddSecurity(opts SecurityOptions) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	nonceSource := randomNonce
	if opts.Nonce != nil {
		nonceSource = opts.Nonce
	}
	ttl := opts.TokenTTL
	if ttl == 0 {
		ttl = 2 * time.Minute
	}

	created := now().UTC()
	createdStr := created.Format(wssCreatedFormat)
	expiresStr := created.Add(ttl).Format(wssCreatedFormat)
	nonce := nonceSource()

	sec := e.header.CreateElement("wsse:Security")
	sec.CreateAttr("xmlns:wsse", NamespaceWSSE)
	sec.CreateAttr("xmlns:wsu", NamespaceWSU)
	sec.CreateAttr("soapenv:mustUnderstand", "1")

	ts := sec.CreateElement("wsu:Timestamp")
	ts.CreateAttr("wsu:Id", "TS-"+uuid.New().String())
	ts.CreateElement("wsu:Created").SetText(createdStr)
	ts.CreateElement("wsu:Expires").SetText(expiresStr)

	token := sec.CreateElement("wsse:UsernameToken")
	token.CreateAttr("wsu:Id", "UsernameToken-"+uuid.New().String())
	token.CreateElement("wsse:Username").SetText(opts.Credentials.Username)

	password := token.CreateElement("wsse:Password")
	password.CreateAttr("Type", passwordDigestType)
	password.SetText(PasswordDigest(nonce, createdStr, opts.Credentials.Password))

	nonceEl := token.CreateElement("wsse:Nonce")
	nonceEl.CreateAttr("EncodingType", base64EncodingType)
	nonceEl.SetText(base64.StdEncoding.EncodeToString(nonce))

	token.CreateElement("wsu:Created").SetText(createdStr)
}

// AddClientID appends the TRACES WebServiceClientId header element.
func (e *Envelope) AddClientID(clientID string) {
	el := e.header.CreateElement("base:WebServiceClientId")
	el.CreateAttr("xmlns:base", NamespaceBase)
	el.SetText(clientID)
}

// PasswordDigest computes Base64(SHA-1(nonce || created || password)) per
// the WSS UsernameToken Profile 1.0.
func PasswordDigest(nonce []byte, created, password string) string {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// randomNonce returns 16 random bytes.
func randomNonce() []byte {
	u := uuid.New()
	return u[:]
}
