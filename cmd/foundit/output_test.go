package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/foundit/internal/features/feed"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/features/reports"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	color.NoColor = true
}

func TestPrintFeed_Table(t *testing.T) {
	since := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := printFeed(&buf, &feed.Snapshot{
		Items: []reports.Report{
			{ItemName: "Wallet", FoundLocation: "Cafeteria", RetrieveLocation: "Security", ReporterName: "Alice", ImageURL: "https://x/y.jpg", CreatedAt: since.Add(time.Hour)},
			{ItemName: "Keys", FoundLocation: "Library", RetrieveLocation: "Desk", ReporterName: "Anonymous", CreatedAt: since},
		},
		Since: since,
		Count: 2,
	}, false)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Wallet [photo]")
	require.Contains(t, out, "Keys")
	require.Contains(t, out, "2 item(s) since")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("Wallet")), bytes.Index(buf.Bytes(), []byte("Keys")))
}

func TestPrintFeed_EmptyAndJSON(t *testing.T) {
	snap := &feed.Snapshot{Items: []reports.Report{}, Since: time.Now()}

	var buf bytes.Buffer
	require.NoError(t, printFeed(&buf, snap, false))
	require.Contains(t, buf.String(), "No items reported since")

	buf.Reset()
	require.NoError(t, printFeed(&buf, snap, true))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, []any{}, decoded["items"])
	require.Equal(t, float64(0), decoded["count"])
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &reports.Report{
		ID:               primitive.NewObjectID(),
		ItemName:         "Umbrella",
		FoundLocation:    "Gym",
		RetrieveLocation: "Office",
		ImageURL:         "https://res.cloudinary.com/demo/image/upload/reports/1.jpg",
		ReporterName:     "Alice",
	})
	out := buf.String()
	require.Contains(t, out, "Reported Umbrella")
	require.Contains(t, out, "image:     https://res.cloudinary.com")
	require.NotContains(t, out, "details:")
}

func TestDescribeError(t *testing.T) {
	require.Equal(t, "missing required --item, --retrieve",
		describeError(apperrors.Validation("op", []string{"itemName", "retrieveLocation"})))
	require.Contains(t, describeError(apperrors.Unauthenticated("op")), "--token")
	require.Equal(t, "image upload failed, nothing was saved: quota",
		describeError(apperrors.Upload("op", errors.New("quota"))))
	require.Equal(t, "plain", describeError(errors.New("plain")))
}

func TestReportCommandValidatesBeforeConnecting(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:1")
	root := newRootCommand()
	root.SetArgs([]string{"report", "--item", "Keys"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	require.Equal(t, []string{"foundLocation", "retrieveLocation"}, apperrors.MissingFields(err))
}

func TestTokenCommandIssuesVerifiableToken(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "jwt")
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs([]string{"token", "--subject", "u5", "--name", "Dana"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	id, err := identity.NewJWTVerifier("cli-secret", time.Hour).Verify(context.Background(), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "u5", id.Subject)
	require.Equal(t, "Dana", id.DisplayName)
}

func TestTokenCommandRefusesOtherProviders(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "firebase")

	root := newRootCommand()
	root.SetArgs([]string{"token", "--subject", "u5"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	require.ErrorContains(t, root.Execute(), "jwt auth provider")
}
