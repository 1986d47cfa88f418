// Package statsd is a helper package that wraps the few statsd methods the entity store emits.
// It hides the datadog dependency so only this file changes if the metrics backend does.
package statsd

import (
	"sync"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const DefaultNamespace = "entitystore"

var (
	mu     sync.RWMutex
	client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}
)

func Client() ddstatsd.ClientInterface {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// SetClient replaces the global client. Passing nil restores the no-op client.
func SetClient(c ddstatsd.ClientInterface) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		c = &ddstatsd.NoOpClient{}
	}
	client = c
}

// EmitTickStat records how long a tick stage took, starting at start.
func EmitTickStat(start time.Time, stage string) {
	duration := time.Since(start)
	if err := Client().Timing("tick", duration, []string{"stage:" + stage}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit tick stat: %v", err)
	}
}

// Incr increments the named counter by one.
func Incr(name string, tags ...string) {
	if err := Client().Incr(name, tags, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit counter %s: %v", name, err)
	}
}

// Init connects a datadog client to address and installs it as the global client.
func Init(address, namespace string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace(namespace),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrapf(err, "failed to create statsd client for %s", address)
	}
	SetClient(newClient)
	return nil
}
