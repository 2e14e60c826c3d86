package main

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/foundit/internal/config"
)

func TestRunChecksCountsFailures(t *testing.T) {
	color.NoColor = true
	var ran []string
	ok := func(name string) check {
		return check{name, func(context.Context, *config.Config) (string, error) {
			ran = append(ran, name)
			return "", nil
		}}
	}
	bad := check{"bad", func(context.Context, *config.Config) (string, error) {
		ran = append(ran, "bad")
		return "", errors.New("unreachable")
	}}

	failed := runChecks(context.Background(), &config.Config{}, []check{ok("a"), bad, ok("b")})
	require.Equal(t, 1, failed)
	require.Equal(t, []string{"a", "bad", "b"}, ran)
}

func TestCheckCloudinaryNeedsCredentials(t *testing.T) {
	_, err := checkCloudinary(context.Background(), &config.Config{})
	require.ErrorContains(t, err, "credentials")
}
