package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/d0ngw/counterd/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestClientCommands(t *testing.T) {
	config := server.NewConfig()
	config.Rep.Endpoint = "tcp://127.0.0.1:0"
	require.NoError(t, config.Parse())
	srv, err := server.New(config)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	endpoint := "tcp://" + srv.Rep.Addr().String()

	out, err := execute(t, "counter", "logins", "--endpoint", endpoint)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","counter_name":"logins","count":1}`, out)

	out, err = execute(t, "get", "logins", "--endpoint", endpoint)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","counter_name":"logins","count":1}`, out)

	out, err = execute(t, "reset", "missing", "--endpoint", endpoint)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"error","counter_name":"missing","message":"Counter does not exist"}`, out)

	_, err = execute(t, "get")
	assert.Error(t, err)
}
