package gocbqueryx

import (
	"math/rand"
	"net/http"
	"sync"
)

type baseHttpComponent struct {
	serviceType ServiceType
	userAgent   string

	lock  sync.RWMutex
	state *baseHttpComponentState
}

type baseHttpComponentState struct {
	httpRoundTripper http.RoundTripper
	endpoints        []string
	authenticator    Authenticator
	serverVersion    string
}

type baseHttpTarget struct {
	RoundTripper  http.RoundTripper
	Endpoint      string
	Username      string
	Password      string
	ServerVersion string
}

func (c *baseHttpComponent) updateState(newState baseHttpComponentState) {
	c.lock.Lock()
	c.state = &newState
	c.lock.Unlock()
}

// SelectEndpoint picks a random endpoint that is not in ignoredEndpoints.
// The returned target has an empty Endpoint when there is nothing left to
// pick from.
func (c *baseHttpComponent) SelectEndpoint(ignoredEndpoints []string) (baseHttpTarget, error) {
	c.lock.RLock()
	state := *c.state
	c.lock.RUnlock()

	// if there are no endpoints to query, we can't proceed
	if len(state.endpoints) == 0 {
		return baseHttpTarget{}, nil
	}

	// remove all the endpoints we've already tried
	remainingEndpoints := filterStringsOut(state.endpoints, ignoredEndpoints)

	// if there are no more endpoints to try, we can't proceed
	if len(remainingEndpoints) == 0 {
		return baseHttpTarget{}, nil
	}

	// pick a random endpoint to attempt
	endpoint := remainingEndpoints[rand.Intn(len(remainingEndpoints))]

	host, err := getHostFromUri(endpoint)
	if err != nil {
		return baseHttpTarget{}, err
	}

	username, password, err := state.authenticator.GetCredentials(c.serviceType, host)
	if err != nil {
		return baseHttpTarget{}, err
	}

	return baseHttpTarget{
		RoundTripper:  state.httpRoundTripper,
		Endpoint:      endpoint,
		Username:      username,
		Password:      password,
		ServerVersion: state.serverVersion,
	}, nil
}
