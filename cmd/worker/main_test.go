package main

import (
	"testing"

	"github.com/scaledesk/scaledesk/internal/app"
	_ "github.com/scaledesk/scaledesk/internal/testing/guard"
)

func TestWorkerSkipsInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatalf("expected test mode to be enabled")
	}
	main()
}
