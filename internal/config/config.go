package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// Config holds the server settings. Flags win over environment variables,
// which win over the defaults.
type Config struct {
	Addr            string
	AllowOrigins    []string
	Orientation     model.Color
	ReadBufferSize  int
	WriteBufferSize int
}

const (
	defaultAddr    = ":3000"
	defaultOrigins = "http://localhost:5173"
)

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", envOr("CHESS_ADDR", defaultAddr), "listen address")
	origins := fs.String("origins", envOr("CHESS_ORIGINS", defaultOrigins), "comma separated CORS origins")
	orientation := fs.String("orientation", envOr("CHESS_ORIENTATION", string(model.White)), "default board orientation for new games")
	readDefault, err := envInt("CHESS_WS_READ_BUFFER", 1024)
	if err != nil {
		return Config{}, err
	}
	writeDefault, err := envInt("CHESS_WS_WRITE_BUFFER", 1024)
	if err != nil {
		return Config{}, err
	}
	readBuf := fs.Int("ws-read-buffer", readDefault, "websocket read buffer size")
	writeBuf := fs.Int("ws-write-buffer", writeDefault, "websocket write buffer size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:            *addr,
		AllowOrigins:    splitList(*origins),
		Orientation:     model.Color(strings.ToLower(*orientation)),
		ReadBufferSize:  *readBuf,
		WriteBufferSize: *writeBuf,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: listen address is empty")
	}
	if len(c.AllowOrigins) == 0 {
		return errors.New("config: at least one CORS origin is required")
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			return errors.New("config: wildcard CORS origin cannot be used with credentials")
		}
	}
	if !c.Orientation.Valid() {
		return fmt.Errorf("config: orientation %q is not white or black", c.Orientation)
	}
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return errors.New("config: websocket buffer sizes must be positive")
	}
	return nil
}

// Origins joins AllowOrigins the way the CORS middleware expects.
func (c Config) Origins() string {
	return strings.Join(c.AllowOrigins, ", ")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
