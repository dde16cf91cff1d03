package statsd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readLine(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestClient_Emits(t *testing.T) {
	srv := listen(t)
	c, err := Dial(context.Background(), Config{
		Address: srv.LocalAddr().String(),
		Prefix:  " prodmon. ",
		Tags:    map[string]string{"env": "prod", " ": "dropped"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	c.Count("session.ended", 1, map[string]string{"reason": " idle_timeout "})
	assert.Equal(t, "prodmon.session.ended:1|c|#env:prod,reason:idle_timeout", readLine(t, srv))

	c.Timing("backend/duration", 1500*time.Microsecond, map[string]string{"env": "stage"})
	assert.Equal(t, "prodmon.backend_duration:1.5|ms|#env:stage", readLine(t, srv))
}

func TestClient_NilAndClosedAreNoops(t *testing.T) {
	var c *Client
	c.Count("x", 1, nil)
	c.Timing("x", time.Second, nil)
	require.NoError(t, c.Close())

	srv := listen(t)
	c, err := Dial(context.Background(), Config{Address: srv.LocalAddr().String()})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	c.Count("after.close", 1, nil)
}

func TestDial_RequiresAddress(t *testing.T) {
	_, err := Dial(context.Background(), Config{Address: "  "})
	require.Error(t, err)
}

func TestName(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "a.b", c.name(" a..b. "))
	assert.Equal(t, "job_metric_id", c.name("job/metric:id"))
	assert.Empty(t, c.name(" . "))

	c.prefix = "prodmon"
	assert.Equal(t, "prodmon.login", c.name("login"))
}

func TestFormatTags(t *testing.T) {
	assert.Empty(t, formatTags(nil, nil))
	got := formatTags(
		map[string]string{"env": "prod", " service ": " ui "},
		map[string]string{"result": " ok ", "": "x", "env": "stage"},
	)
	assert.Equal(t, "|#env:stage,result:ok,service:ui", got)
}
