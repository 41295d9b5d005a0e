package rep

import (
	"context"
	"net"
	"testing"

	"github.com/d0ngw/counterd/client"
	c "github.com/d0ngw/counterd/common"
	"github.com/d0ngw/counterd/counter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startService(t *testing.T) (*Service, *client.Client) {
	return startServiceAt(t, "tcp://127.0.0.1:0")
}

func startServiceAt(t *testing.T, endpoint string) (*Service, *client.Client) {
	svc := NewService(NewConfig(endpoint), counter.NewRouter(counter.NewStore(), nil))
	services := c.NewServices(svc)
	require.True(t, services.Init())
	require.True(t, services.Start())
	t.Cleanup(func() { services.Stop() })

	addr := svc.Addr()
	require.NotNil(t, addr)
	_, port, err := net.SplitHostPort(addr.String())
	require.NoError(t, err)
	cli, err := client.Dial(context.Background(), "tcp://127.0.0.1:"+port)
	require.NoError(t, err)
	t.Cleanup(func() { cli.Close() })
	return svc, cli
}

func TestServiceScenario(t *testing.T) {
	_, cli := startService(t)

	resp, err := cli.Incr("test_counter")
	require.NoError(t, err)
	assert.Equal(t, counter.Success("test_counter", 1), resp)

	resp, err = cli.Incr("test_counter")
	require.NoError(t, err)
	assert.Equal(t, counter.Success("test_counter", 2), resp)

	resp, err = cli.Reset("test_counter")
	require.NoError(t, err)
	assert.Equal(t, counter.Success("test_counter", 0), resp)

	resp, err = cli.Get("test_counter1")
	require.NoError(t, err)
	assert.Equal(t, counter.Failure("test_counter1", "Counter does not exist"), resp)

	reply, err := cli.SendRaw([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, `"Invalid JSON"`, string(reply))

	// 无法解析的请求之后服务继续可用
	reply, err = cli.SendRaw([]byte(`{"action":"delete","counter_name":"test_counter"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"status":"error","message":"Invalid action: delete"}`, string(reply))

	resp, err = cli.Incr("test_counter")
	require.NoError(t, err)
	assert.EqualValues(t, 1, *resp.Count)
}

func TestServiceBindAllInterfaces(t *testing.T) {
	svc, cli := startServiceAt(t, "tcp://*:0")
	host, _, err := net.SplitHostPort(svc.Addr().String())
	require.NoError(t, err)
	assert.True(t, net.ParseIP(host).IsUnspecified(), host)

	resp, err := cli.Incr("wildcard")
	require.NoError(t, err)
	assert.Equal(t, counter.Success("wildcard", 1), resp)

	resp, err = cli.Get("wildcard")
	require.NoError(t, err)
	assert.Equal(t, counter.Success("wildcard", 1), resp)

	reply, err := cli.SendRaw([]byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, `"Invalid JSON"`, string(reply))
}

func TestServiceStopStart(t *testing.T) {
	svc := NewService(NewConfig("tcp://127.0.0.1:0"), counter.NewRouter(counter.NewStore(), nil))
	require.NoError(t, svc.Init())
	require.True(t, svc.Start())
	assert.NotNil(t, svc.Addr())
	assert.True(t, svc.Stop())
	assert.Nil(t, svc.Addr())
	assert.True(t, svc.Stop())
}

func TestServiceInit(t *testing.T) {
	svc := NewService(nil, nil)
	assert.Error(t, svc.Init())

	svc = NewService(&Config{Endpoint: "localhost:5558"}, counter.NewRouter(counter.NewStore(), nil))
	assert.Error(t, svc.Init())
}

func TestConfigParse(t *testing.T) {
	conf := NewConfig("")
	require.NoError(t, conf.Parse())
	assert.Equal(t, DefaultEndpoint, conf.Endpoint)

	conf = NewConfig(" inproc://x ")
	require.NoError(t, conf.Parse())
	assert.Equal(t, "inproc://x", conf.Endpoint)

	// 校验在Parse时进行,错误不会被忽略
	conf = NewConfig("localhost:5558")
	assert.Error(t, conf.Parse())
	svc := NewService(conf, counter.NewRouter(counter.NewStore(), nil))
	assert.Error(t, svc.Init())
}
