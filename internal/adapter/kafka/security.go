package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// Security holds the optional TLS and SASL/PLAIN settings of the
// cluster connection. The zero value means plaintext without auth.
type Security struct {
	CAFile   string
	CertFile string
	KeyFile  string
	User     string
	Pass     string
}

func (s Security) tlsEnabled() bool {
	return s.CAFile != ""
}

func (s Security) saslEnabled() bool {
	return s.User != ""
}

// LoadTLSConfig builds a mutual TLS client config. All args are file paths.
func LoadTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "LoadTLSConfig"

	caCert, err := os.ReadFile(ca)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CA certificate file: %w", op, err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, opErr(errors.New("failed to parse CA certificate"), op)
	}

	cfg := &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}
	if cert == "" && key == "" {
		return cfg, nil
	}

	clientCert, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, opErr(err, op)
	}
	cfg.Certificates = []tls.Certificate{clientCert}
	return cfg, nil
}

func (s Security) clientOpts() ([]kgo.Opt, error) {
	const op = "Security.clientOpts"

	var opts []kgo.Opt
	if s.tlsEnabled() {
		tlsCfg, err := LoadTLSConfig(s.CAFile, s.CertFile, s.KeyFile)
		if err != nil {
			return nil, opErr(err, op)
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}
	if s.saslEnabled() {
		auth := plain.Auth{User: s.User, Pass: s.Pass}
		opts = append(opts, kgo.SASL(auth.AsMechanism()))
	}
	return opts, nil
}

// applyGoka replaces goka's global client config, which every processor
// and view created afterwards inherits.
func (s Security) applyGoka() error {
	const op = "Security.applyGoka"

	if !s.tlsEnabled() && !s.saslEnabled() {
		return nil
	}

	cfg := goka.DefaultConfig()
	if s.tlsEnabled() {
		tlsCfg, err := LoadTLSConfig(s.CAFile, s.CertFile, s.KeyFile)
		if err != nil {
			return opErr(err, op)
		}
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = tlsCfg
	}
	if s.saslEnabled() {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	goka.ReplaceGlobalConfig(cfg)
	return nil
}
