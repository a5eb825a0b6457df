package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"liveboard/src/base"
	"liveboard/src/feed"
	"liveboard/src/logx"
	"liveboard/src/overlay"
	"liveboard/src/render"
	"liveboard/src/render/ggsurface"
	"liveboard/src/render/svgsurface"
	"liveboard/ui/gui"
	"liveboard/ui/gui/gconf"
)

// parseVariations decodes repeated --pv values of the form
// "e2e4,e7e5=12345": comma-separated UCI moves, optional "=nodes".
// List order is the variation rank.
func parseVariations(args []string) ([]overlay.Variation, error) {
	var res []overlay.Variation
	for _, arg := range args {
		nodes := int64(1)
		movesPart := arg
		if i := strings.LastIndexByte(arg, '='); i >= 0 {
			n, err := strconv.ParseInt(arg[i+1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad node count in %q: %v", arg, err)
			}
			nodes = n
			movesPart = arg[:i]
		}
		v := overlay.Variation{Nodes: nodes}
		for _, uci := range strings.Split(movesPart, ",") {
			mv, err := base.MoveFromUCI(strings.TrimSpace(uci))
			if err != nil {
				return nil, err
			}
			v.Moves = append(v.Moves, mv)
		}
		res = append(res, v)
	}
	return res, nil
}

func buildDrawer(c *cli.Command, logger logx.Logger) (*render.BoardDrawer, error) {
	drawer := render.NewBoardDrawer(render.Config{
		SquareSize: float64(c.Int("square")),
		Border:     float64(c.Int("border")),
	}, logger)
	drawer.SetFlipped(c.Bool("flip"))

	fen := c.String("fen")
	if fen == "" {
		fen = base.FEN_START_GAME
	}
	if err := drawer.SetPositionFEN(fen); err != nil {
		return nil, err
	}
	if last := c.String("lastmove"); last != "" {
		mv, err := base.MoveFromUCI(last)
		if err != nil {
			return nil, err
		}
		drawer.SetLastMove(&mv)
	}
	vs, err := parseVariations(c.StringSlice("pv"))
	if err != nil {
		return nil, err
	}
	drawer.SetVariations(vs)
	return drawer, nil
}

func boardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "fen", Usage: "string FEN format"},
		&cli.StringFlag{Name: "lastmove", Usage: "UCI move to mark (e.g. e2e4)"},
		&cli.StringSliceFlag{Name: "pv", Usage: "candidate line, \"e2e4,e7e5=nodes\"; repeatable, best first"},
		&cli.BoolFlag{Name: "flip", Usage: "black at the bottom"},
		&cli.IntFlag{Name: "square", Value: 80, Usage: "square size, px"},
		&cli.IntFlag{Name: "border", Value: 16, Usage: "border size, px"},
		&cli.StringFlag{Name: "log", Value: "info", Usage: "log level"},
	}
}

func newLogger(c *cli.Command) logx.Logger {
	return logx.NewLogx(logx.GetLoggerLevelByString(c.String("log")), false, true)
}

func main() {
	if err := (&cli.Command{
		Name:  "liveboard",
		Usage: "broadcast chess board renderer",
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render a position with analysis arrows to PNG",
				Flags: append(boardFlags(),
					&cli.StringFlag{Name: "out", Value: "board.png", Usage: "output file"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)
					drawer, err := buildDrawer(c, logger)
					if err != nil {
						return err
					}
					size := int(drawer.PixelSize())
					surf, err := ggsurface.NewSurface(size, size, float64(c.Int("square")))
					if err != nil {
						return err
					}
					drawer.Redraw(surf)
					return surf.SavePNG(c.String("out"))
				},
			},
			{
				Name:  "svg",
				Usage: "render a position with analysis arrows to SVG",
				Flags: append(boardFlags(),
					&cli.StringFlag{Name: "out", Value: "board.svg", Usage: "output file"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)
					drawer, err := buildDrawer(c, logger)
					if err != nil {
						return err
					}
					f, err := os.Create(c.String("out"))
					if err != nil {
						return err
					}
					defer f.Close()
					size := int(drawer.PixelSize())
					surf := svgsurface.NewSurface(f, size, size, float64(c.Int("square")))
					drawer.Redraw(surf)
					surf.Close()
					return nil
				},
			},
			{
				Name:  "view",
				Usage: "live board window following an analysis feed",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "path to liveboard.json"},
					&cli.StringFlag{Name: "url", Usage: "websocket feed URL (overrides config)"},
					&cli.StringFlag{Name: "fen", Usage: "starting position"},
					&cli.StringFlag{Name: "white", Usage: "white player name"},
					&cli.StringFlag{Name: "black", Usage: "black player name"},
					&cli.StringFlag{Name: "log", Value: "info", Usage: "log level"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)
					conf, err := gconf.NewConfig(c.String("config"))
					if err != nil {
						return err
					}
					if url := c.String("url"); url != "" {
						conf.FeedURL = url
					}

					var frames chan *feed.Frame
					if conf.FeedURL != "" {
						frames = make(chan *feed.Frame, 16)
						client := feed.NewClient(conf.FeedURL, logger)
						go func() {
							if err := client.Run(ctx, frames); err != nil {
								logger.Errorf("feed stopped: %v", err)
							}
						}()
					}

					viewer, err := gui.NewViewer(conf, frames, logger)
					if err != nil {
						return err
					}
					if fen := c.String("fen"); fen != "" {
						if err := viewer.SetPosition(fen); err != nil {
							return err
						}
					}
					viewer.SetPlayers(
						render.Player{Name: c.String("white")},
						render.Player{Name: c.String("black")},
					)
					return viewer.Run()
				},
			},
		},
	}).Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
	}
}
