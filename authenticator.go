package gocbqueryx

type Authenticator interface {
	GetCredentials(service ServiceType, hostPort string) (string, string, error)
}

type PasswordAuthenticator struct {
	Username string
	Password string
}

var _ Authenticator = (*PasswordAuthenticator)(nil)

func (a *PasswordAuthenticator) GetCredentials(
	service ServiceType, hostPort string,
) (string, string, error) {
	return a.Username, a.Password, nil
}
