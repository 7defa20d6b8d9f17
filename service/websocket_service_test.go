package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// wsFrame defers payload decoding so each test can unmarshal into the
// type the frame kind implies.
type wsFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dialWebsocket(t *testing.T, ws *service.WebSocketService) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(ws.HandleQuery))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWebSocket_QueryStreamsProgressThenAnswer(t *testing.T) {
	repo := newFakeRepo(&types.Document{
		ID:      "doc-1",
		Title:   "Capsule Manual",
		Content: "The capsule pressure limit is 90 psi.",
	})
	ai := scriptedAI(relevantWith("90 psi"), answerWith("90 psi"))
	fx := newQueryFixture(testConfig(), repo, ai)
	conn := dialWebsocket(t, service.NewWebSocketService(fx.service))

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{
		Type: types.TypeWebsocketQuery,
		Payload: types.QueryRequest{
			DocumentID: "doc-1",
			Question:   "What is the pressure limit?",
		},
	}))

	var stages []string
	for {
		frame := readFrame(t, conn)
		if frame.Type == types.TypeWebsocketProcessing {
			var payload types.WebSocketProcessingPayload
			require.NoError(t, json.Unmarshal(frame.Payload, &payload))
			stages = append(stages, payload.Stage)
			continue
		}

		require.Equal(t, types.TypeWebsocketAnswer, frame.Type)
		var res types.QueryResponse
		require.NoError(t, json.Unmarshal(frame.Payload, &res))
		assert.Equal(t, "90 psi", res.Analysis)
		break
	}
	assert.Equal(t, []string{"resolving", "filtering", "generating"}, stages)
}

func TestWebSocket_PingPong(t *testing.T) {
	fx := newQueryFixture(testConfig(), newFakeRepo(), scriptedAI(notRelevant, answerWith("unused")))
	conn := dialWebsocket(t, service.NewWebSocketService(fx.service))

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{
		Type: types.TypeWebsocketPing,
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, types.TypeWebsocketPong, frame.Type)
}

func TestWebSocket_InvalidMessageType(t *testing.T) {
	fx := newQueryFixture(testConfig(), newFakeRepo(), scriptedAI(notRelevant, answerWith("unused")))
	conn := dialWebsocket(t, service.NewWebSocketService(fx.service))

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{
		Type: "bogus",
	}))

	frame := readFrame(t, conn)
	require.Equal(t, types.TypeWebsocketError, frame.Type)
	var payload types.WebSocketErrorPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &payload))
	assert.NotEmpty(t, payload.Error)
}

func TestWebSocket_InvalidQueryPayload(t *testing.T) {
	fx := newQueryFixture(testConfig(), newFakeRepo(), scriptedAI(notRelevant, answerWith("unused")))
	conn := dialWebsocket(t, service.NewWebSocketService(fx.service))

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{
		Type:    types.TypeWebsocketQuery,
		Payload: "not an object",
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, types.TypeWebsocketError, frame.Type)
}

func TestWebSocket_QueryErrorFrame(t *testing.T) {
	fx := newQueryFixture(testConfig(), newFakeRepo(), scriptedAI(notRelevant, answerWith("unused")))
	conn := dialWebsocket(t, service.NewWebSocketService(fx.service))

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{
		Type: types.TypeWebsocketQuery,
		Payload: types.QueryRequest{
			DocumentID: "missing",
			Question:   "Anything?",
		},
	}))

	frame := readFrame(t, conn)
	for frame.Type == types.TypeWebsocketProcessing {
		frame = readFrame(t, conn)
	}
	require.Equal(t, types.TypeWebsocketError, frame.Type)
	var payload types.WebSocketErrorPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &payload))
	assert.Contains(t, payload.Error, "not found")
}
