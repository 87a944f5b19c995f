// Command demoplayer is an ebiten-backed reference host exercising the
// Player Engine against the in-repo fakerenderer, blitting its RGBA
// framebuffer onto the window every frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/LottieFiles/dotlottie-go/pkg/logging"
	"github.com/LottieFiles/dotlottie-go/pkg/player"
	"github.com/LottieFiles/dotlottie-go/pkg/renderer/fakerenderer"
)

const (
	screenWidth  = 400
	screenHeight = 400
)

var animationPath = flag.String("animation", "", "Path to a Lottie JSON animation file")

// Game drives one player.Player and blits its renderer output each frame.
type Game struct {
	p        *player.Player
	r        *fakerenderer.Renderer
	frame    *ebiten.Image
	showHelp bool
}

func NewGame(animationData string) *Game {
	r := fakerenderer.New()
	cfg := player.DefaultConfig()
	cfg.Autoplay = true
	cfg.LoopAnimation = true
	logger := logging.NewLoggerFromEnv()
	p := player.New(r, cfg, logger)

	if !p.LoadAnimationData(animationData, screenWidth, screenHeight) {
		logger.Fatal("failed to load animation data")
	}

	return &Game{
		p:        p,
		r:        r,
		frame:    ebiten.NewImage(screenWidth, screenHeight),
		showHelp: true,
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		if g.p.IsPlaying() {
			g.p.Pause()
		} else {
			g.p.Play()
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit")
	}

	g.p.Tick()
	for {
		if _, ok := g.p.PollEvent(); !ok {
			break
		}
	}

	w, h := g.p.AnimationSize()
	if w > 0 && h > 0 {
		g.frame.WritePixels(g.r.Buffer())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(g.frame, op)
	if g.showHelp {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"frame %.1f  loop %d  SPACE play/pause  ESC quit",
			g.p.CurrentFrame(), g.p.LoopCount(),
		))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	var animationData string
	if *animationPath != "" {
		data, err := os.ReadFile(*animationPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to read animation file:", err)
			os.Exit(1)
		}
		animationData = string(data)
	} else {
		animationData = `{"fr":30,"ip":0,"op":90,"w":400,"h":400,"layers":[]}`
	}

	game := NewGame(animationData)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("dotLottie demo player")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err.Error() != "quit" {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
