package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateLinkID(t *testing.T) {
	require.NoError(t, ValidateLinkID("abc123"))
	require.NoError(t, ValidateLinkID("MTIzNDU2Nzg5"))
	require.NoError(t, ValidateLinkID("with_underscore-dash"))

	require.Error(t, ValidateLinkID(""))
	require.Error(t, ValidateLinkID("has space"))
	require.Error(t, ValidateLinkID("slash/inside"))
	require.Error(t, ValidateLinkID("汉字"))
	require.Error(t, ValidateLinkID(strings.Repeat("a", 65)))
}

func TestValidateTargetURL(t *testing.T) {
	require.NoError(t, ValidateTargetURL("https://example.com/path?q=1"))

	require.Error(t, ValidateTargetURL(""))
	require.Error(t, ValidateTargetURL("not a url"))
	require.Error(t, ValidateTargetURL("https://example.com/"+strings.Repeat("a", 2048)))
}
