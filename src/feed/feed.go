package feed

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"liveboard/src/base"
	"liveboard/src/logx"
	"liveboard/src/overlay"
)

// Wire shapes of the analysis feed. One websocket message may carry
// position updates, evaluation updates or both; field names are fixed
// by the feed server.

type PositionUpdate struct {
	Ply        int     `json:"ply"` // 0 for startpos
	ThinkingID *int64  `json:"thinkingId"`
	MoveUCI    *string `json:"moveUci"`
	MoveSAN    *string `json:"moveSan"`
	FEN        string  `json:"fen"`
	WhiteClock *int    `json:"whiteClock"`
	BlackClock *int    `json:"blackClock"`
	ScoreQ     *int    `json:"scoreQ"`
	ScoreW     *int    `json:"scoreW"`
	ScoreD     *int    `json:"scoreD"`
	ScoreB     *int    `json:"scoreB"`
	MovesLeft  *int    `json:"movesLeft"`
}

type ThinkingMove struct {
	Nodes      int64   `json:"nodes"`
	MoveUCI    string  `json:"moveUci"`
	MoveOppUCI *string `json:"moveOppUci"`
	MoveSAN    string  `json:"moveSan"`
	PVSAN      string  `json:"pvSan"`
	ScoreQ     int     `json:"scoreQ"`
	ScoreW     int     `json:"scoreW"`
	ScoreD     int     `json:"scoreD"`
	ScoreB     int     `json:"scoreB"`
	MateScore  *int    `json:"mateScore"`
	MovesLeft  *int    `json:"movesLeft"`
}

type ThinkingUpdate struct {
	UpdateID int64          `json:"updateId"`
	Nodes    int64          `json:"nodes"`
	TimeMs   int64          `json:"time"`
	Depth    int            `json:"depth"`
	SelDepth int            `json:"seldepth"`
	Moves    []ThinkingMove `json:"moves"`
}

type Frame struct {
	Positions []PositionUpdate `json:"positions,omitempty"`
	Thinkings []ThinkingUpdate `json:"thinkings,omitempty"`
}

// DecodeFrame parses one raw feed message.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Variations flattens an evaluation into the drawer's candidate shape.
// The move list keeps feed order, so rank is the slice index; each
// entry carries the engine move and, when present, the expected reply.
// Moves that fail to decode are dropped, not fatal.
func (t *ThinkingUpdate) Variations(logger logx.Logger) []overlay.Variation {
	res := make([]overlay.Variation, 0, len(t.Moves))
	for _, m := range t.Moves {
		mv, err := base.MoveFromUCI(m.MoveUCI)
		if err != nil {
			logger.Warnf("skip unparsable move %q: %v", m.MoveUCI, err)
			continue
		}
		v := overlay.Variation{Moves: []base.Move{mv}, Nodes: m.Nodes}
		if m.MoveOppUCI != nil {
			if opp, err := base.MoveFromUCI(*m.MoveOppUCI); err == nil {
				v.Moves = append(v.Moves, opp)
			}
		}
		res = append(res, v)
	}
	return res
}

// Client reads update frames from the feed server over a websocket and
// hands them to the viewer through a channel. The core never blocks on
// it: the read loop lives on its own goroutine.
type Client struct {
	url    string
	logger logx.Logger
}

func NewClient(url string, logger logx.Logger) *Client {
	return &Client{url: url, logger: logger}
}

// Run connects and pumps frames into out until the stream ends or ctx
// is cancelled. The channel is closed on return.
func (c *Client) Run(ctx context.Context, out chan<- *Frame) error {
	defer close(out)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.logger.Infof("feed connected: %s", c.url)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		frame, err := DecodeFrame(data)
		if err != nil {
			c.logger.Warnf("skip bad frame: %v", err)
			continue
		}
		select {
		case out <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
