package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/config"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); !strings.HasPrefix(got, "invoicing ") {
		t.Errorf("version output = %q", got)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewUploader(t *testing.T) {
	if _, ok := newUploader(config.CloudinaryConfig{}).(blob.Disabled); !ok {
		t.Error("uploader without credentials should be disabled")
	}

	up := newUploader(config.CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s", Folder: "products"})
	if _, ok := up.(*blob.Breaker); !ok {
		t.Errorf("uploader with credentials = %T, want *blob.Breaker", up)
	}
}
