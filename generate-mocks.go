//go:generate moq -out mock_retrymanager_test.go . RetryManager RetryController

package gocbqueryx
