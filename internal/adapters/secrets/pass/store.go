package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bnema/containerdesk/internal/ports"
)

var (
	ErrUnavailable = errors.New("pass command unavailable")
	ErrNotFound    = errors.New("pass entry not found")
)

const missingEntryMarker = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps push registration tokens in the pass password store. An entry
// holds the token on its first line followed by a "saved:" trailer, so
// `pass show` tells the user when the device was provisioned.
type Store struct {
	run runFunc
	now func() time.Time
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand, now: time.Now}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	token := strings.TrimSpace(value)
	if token == "" || strings.ContainsAny(token, "\r\n") {
		return fmt.Errorf("pass put %q: token must be a single non-empty line", key)
	}

	entry := fmt.Sprintf("%s\nsaved: %s\n", token, s.now().UTC().Format(time.RFC3339))
	_, err := s.exec(ctx, "put", key, entry, "insert", "--multiline", "--force", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.exec(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	token, _, _ := strings.Cut(stdout, "\n")
	if token = strings.TrimSpace(token); token == "" {
		return "", fmt.Errorf("pass get %q: entry is empty", key)
	}
	return token, nil
}

// Delete succeeds when the entry is already gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.exec(ctx, "delete", key, "", "rm", "--force", key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store) exec(ctx context.Context, op, key, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, input, args...)
	switch {
	case err == nil:
		return stdout, nil
	case strings.Contains(stderr, missingEntryMarker):
		return "", fmt.Errorf("pass %s %q: %w", op, key, ErrNotFound)
	case stderr != "":
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	default:
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	}
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	log.WithField("subcommand", args[0]).Debug("running pass")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
