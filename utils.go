package gocbqueryx

import (
	"net/url"

	"golang.org/x/exp/slices"
)

func getHostFromUri(uri string) (string, error) {
	parsedUrl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}

	return parsedUrl.Host, nil
}

func filterStringsOut(strs []string, toRemove []string) []string {
	if len(toRemove) == 0 {
		return strs
	}

	out := make([]string, 0, len(strs))
	for _, str := range strs {
		if !slices.Contains(toRemove, str) {
			out = append(out, str)
		}
	}
	return out
}
