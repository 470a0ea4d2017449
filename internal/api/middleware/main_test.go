package middleware

import (
	"io"
	"os"
	"testing"

	"github.com/groupcast/groupcast-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}
