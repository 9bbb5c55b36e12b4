package desktop

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

// Size of one glyph of the debug font.
const (
	glyphW = 6
	glyphH = 16
)

var (
	colorText    = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorFocus   = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorDim     = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorError   = color.RGBA{0xff, 0x55, 0x55, 0xff}
	colorOK      = color.RGBA{0x55, 0xdd, 0x55, 0xff}
	colorShade   = color.RGBA{0, 0, 0, 0xa0}
	colorPanel   = color.RGBA{0x14, 0x14, 0x28, 0xf0}
	colorBorder  = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorMenuBG  = color.RGBA{0x10, 0x10, 0x20, 0xff}
	colorButton  = color.RGBA{0xff, 0xff, 0xff, 0x40}
	colorPressed = color.RGBA{0xff, 0xff, 0xff, 0x80}
)

// palette maps the terminal palette to RGB for tints and sky detail.
var palette = map[core.Color]color.RGBA{
	core.ColorRed:           {0xcc, 0x22, 0x22, 0xff},
	core.ColorGreen:         {0x22, 0xaa, 0x22, 0xff},
	core.ColorYellow:        {0xcc, 0xaa, 0x00, 0xff},
	core.ColorBlue:          {0x22, 0x44, 0xcc, 0xff},
	core.ColorMagenta:       {0xaa, 0x22, 0xaa, 0xff},
	core.ColorCyan:          {0x22, 0xaa, 0xaa, 0xff},
	core.ColorWhite:         {0xcc, 0xcc, 0xcc, 0xff},
	core.ColorBrightRed:     {0xff, 0x55, 0x55, 0xff},
	core.ColorBrightGreen:   {0x55, 0xff, 0x55, 0xff},
	core.ColorBrightYellow:  {0xff, 0xff, 0x55, 0xff},
	core.ColorBrightBlue:    {0x55, 0x88, 0xff, 0xff},
	core.ColorBrightMagenta: {0xff, 0x55, 0xff, 0xff},
	core.ColorBrightCyan:    {0x55, 0xff, 0xff, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x99, 0x00, 0xff},
	core.ColorGray:          {0x80, 0x80, 0x80, 0xff},
	core.ColorBrown:         {0x8b, 0x4a, 0x16, 0xff},
	core.ColorNavy:          {0x10, 0x18, 0x50, 0xff},
}

func paletteRGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return colorText
}

// maxCachedTexts bounds the text cache; the score changes every coin.
const maxCachedTexts = 256

// textCache keeps rendered debug-font strings so scaled text costs one
// DrawImage per frame.
type textCache struct {
	images map[string]*ebiten.Image
}

func newTextCache() *textCache {
	return &textCache{images: make(map[string]*ebiten.Image)}
}

func (c *textCache) get(s string) *ebiten.Image {
	if img, ok := c.images[s]; ok {
		return img
	}
	if len(c.images) >= maxCachedTexts {
		for k, img := range c.images {
			img.Deallocate()
			delete(c.images, k)
		}
	}
	img := ebiten.NewImage(max(len([]rune(s))*glyphW, 1), glyphH)
	ebitenutil.DebugPrint(img, s)
	c.images[s] = img
	return img
}

// textWidth is the width of s drawn at scale.
func textWidth(s string, scale float64) float64 {
	return float64(len([]rune(s))*glyphW) * scale
}

// drawText draws s with its top-left corner at (x, y).
func (g *Game) drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	if s == "" {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(g.text.get(s), op)
}

// drawCentered draws s centred horizontally on the screen.
func (g *Game) drawCentered(dst *ebiten.Image, s string, y, scale float64, clr color.Color) {
	g.drawText(dst, s, (ScreenWidth-textWidth(s, scale))/2, y, scale, clr)
}

// Draw renders the current page.
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.page {
	case pageMenu:
		g.drawMenu(screen)
	case pageHighScores:
		g.drawHighScores(screen)
	case pageOptions:
		screen.Fill(colorMenuBG)
		g.drawOptionsPanel(screen, "Options", g.optCursor, []string{"Back"}, ui.OptionRows)
	case pageGame:
		g.drawGame(screen)
	}
}

func (g *Game) drawMenu(dst *ebiten.Image) {
	dst.Fill(colorMenuBG)
	g.drawCentered(dst, ui.Title, 110, 5, colorFocus)
	if hs := g.cfg.Store.Game().HighScores; len(hs) > 0 {
		g.drawCentered(dst, fmt.Sprintf("Top score: %d (%s)", hs[0].Score, hs[0].Name), 210, 2, colorDim)
	}
	for i, item := range ui.MenuItems {
		label, clr := "  "+item.String()+"  ", color.Color(colorText)
		if i == g.menuCursor {
			label, clr = "> "+item.String()+" <", colorFocus
		}
		g.drawCentered(dst, label, 280+float64(i)*56, 3, clr)
	}
	g.drawCentered(dst, "Arrows: Navigate   Enter: Select   Esc: Quit", ScreenHeight-48, 2, colorDim)
}

func (g *Game) drawHighScores(dst *ebiten.Image) {
	dst.Fill(colorMenuBG)
	g.drawCentered(dst, "HIGH SCORES", 60, 4, colorFocus)
	if len(g.scores) == 0 {
		g.drawCentered(dst, "No scores yet. Be the first!", 250, 2, colorText)
	}
	for i, hs := range g.scores {
		line := fmt.Sprintf("%2d.  %-3s  %8d", i+1, hs.Name, hs.Score)
		g.drawCentered(dst, line, 140+float64(i)*34, 2, colorText)
	}
	if g.best != nil && g.stats != nil {
		line := fmt.Sprintf("Best run: %d by %s  |  %d runs played", g.best.Score, g.best.Player, g.stats.Runs)
		g.drawCentered(dst, line, ScreenHeight-96, 2, colorDim)
	}
	g.drawCentered(dst, "Press any key to return", ScreenHeight-48, 2, colorDim)
}

// panelLine is one row of a modal panel.
type panelLine struct {
	Text    string
	Focused bool
	Color   color.Color
}

const (
	panelWidth     = 520
	panelLineH     = 36
	panelTextScale = 2
)

// panelRect returns the top-left corner and height of a centred panel
// holding n lines under a title.
func panelRect(n int) (x, y, h float64) {
	h = float64(n)*panelLineH + 120
	return (ScreenWidth - panelWidth) / 2, (ScreenHeight - h) / 2, h
}

// drawPanel shades the screen and draws a titled box of lines.
func (g *Game) drawPanel(dst *ebiten.Image, title string, lines []panelLine) {
	vector.DrawFilledRect(dst, 0, 0, ScreenWidth, ScreenHeight, colorShade, false)
	x, y, h := panelRect(len(lines))
	vector.DrawFilledRect(dst, float32(x), float32(y), panelWidth, float32(h), colorPanel, false)
	vector.StrokeRect(dst, float32(x), float32(y), panelWidth, float32(h), 3, colorBorder, false)
	g.drawCentered(dst, title, y+24, 3, colorFocus)

	for i, l := range lines {
		text, clr := "  "+l.Text, l.Color
		if clr == nil {
			clr = colorText
		}
		if l.Focused {
			text, clr = "> "+l.Text, colorFocus
		}
		g.drawText(dst, text, x+32, y+88+float64(i)*panelLineH, panelTextScale, clr)
	}
}

// optionLines renders the option rows as panel lines.
func optionLines(gs store.GameState, focus int) []panelLine {
	lines := make([]panelLine, ui.OptionRows)
	for row := range lines {
		value := ui.OptionValue(gs, row)
		if row < ui.OptionSound {
			value = "< " + value + " >"
		}
		lines[row] = panelLine{
			Text:    fmt.Sprintf("%-10s %s", ui.OptionLabels[row], value),
			Focused: row == focus,
		}
	}
	return lines
}

// drawOptionsPanel draws the option rows, a spacer and the buttons. The
// cursor spans both; the first button sits at cursor value first.
func (g *Game) drawOptionsPanel(dst *ebiten.Image, title string, cursor int, buttons []string, first int) {
	lines := append(optionLines(g.cfg.Store.Game(), cursor), panelLine{})
	for i, label := range buttons {
		lines = append(lines, panelLine{Text: label, Focused: cursor == first+i})
	}
	g.drawPanel(dst, title, lines)
}

func (g *Game) drawGame(dst *ebiten.Image) {
	if g.engine == nil {
		return
	}
	snap := g.engine.Snapshot()
	drawScene(dst, snap, g.cfg.Themes)
	g.drawHUD(dst)
	g.drawButtons(dst)

	gs := g.cfg.Store.Game()
	switch ui.ModalFor(gs) {
	case ui.ModalPause:
		g.drawOptionsPanel(dst, "Paused", g.modalCursor, ui.PauseButtons, ui.PauseContinue)
	case ui.ModalGameOver:
		g.drawGameOver(dst, gs)
	case ui.ModalInitials:
		g.drawInitials(dst, gs)
	}
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	gs := g.cfg.Store.Game()
	g.drawText(dst, fmt.Sprintf("Score: %d", gs.Score), 16, 16, 2, colorText)
	status := "Sound " + ui.OnOff(gs.IsSoundEnabled) + "  Music " + ui.OnOff(gs.IsMusicEnabled)
	g.drawText(dst, status, 16, 52, 1, colorDim)
}

func (g *Game) drawButtons(dst *ebiten.Image) {
	for _, b := range g.buttons {
		clr := colorButton
		if g.touching(b.Action) {
			clr = colorPressed
		}
		vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
		tx := float64(b.X) + (float64(b.W)-textWidth(b.Label, 3))/2
		ty := float64(b.Y) + (float64(b.H)-glyphH*3)/2
		g.drawText(dst, b.Label, tx, ty, 3, colorText)
	}
}

func (g *Game) drawGameOver(dst *ebiten.Image, gs store.GameState) {
	lines := []panelLine{{Text: fmt.Sprintf("Your final score: %d", gs.Score)}}
	if len(gs.HighScores) > 0 {
		top := gs.HighScores[0]
		lines = append(lines, panelLine{Text: fmt.Sprintf("Top score: %d (%s)", top.Score, top.Name), Color: colorDim})
	}
	lines = append(lines, panelLine{})
	for i, label := range ui.OverButtons {
		lines = append(lines, panelLine{Text: label, Focused: g.modalCursor == i})
	}
	g.drawPanel(dst, "Game Over", lines)
}

func (g *Game) drawInitials(dst *ebiten.Image, gs store.GameState) {
	name := string(g.initials)
	slots := name + strings.Repeat("_", max(3-len(g.initials), 0))
	save := panelLine{Text: "Enter: Save", Color: colorDim}
	if len(g.initials) == 3 {
		save.Color = colorOK
	}
	lines := []panelLine{
		{Text: fmt.Sprintf("Score: %d", gs.Score)},
		{},
		{Text: "Your initials: " + slots},
		{Text: g.initialsErr, Color: colorError},
		save,
		{Text: "Esc: Skip", Color: colorDim},
	}
	g.drawPanel(dst, "New High Score!", lines)
}

// viewRect is a sprite projected to screen pixels.
type viewRect struct {
	X, Y, W, H float64
}

// project maps a world box through the camera onto the logical screen.
func project(b core.Box, snap scene.Snapshot) viewRect {
	sx := ScreenWidth / snap.ViewW
	sy := ScreenHeight / snap.ViewH
	return viewRect{
		X: (b.X - snap.ScrollX) * sx,
		Y: (b.Y - snap.ScrollY) * sy,
		W: b.W * sx,
		H: b.H * sy,
	}
}

// skyCell is the spacing of the sky pattern in screen pixels.
const skyCell = 24

// drawScene paints the sky, then every sprite in snapshot order.
func drawScene(dst *ebiten.Image, snap scene.Snapshot, skins *theme.Catalog) {
	if snap.ViewW <= 0 || snap.ViewH <= 0 {
		return
	}
	sky := skins.Skin(snap.BackgroundKey)
	dst.Fill(sky.RGBA())
	drawSky(dst, sky, snap.BackgroundX*ScreenWidth/snap.ViewW)

	for _, sp := range snap.Sprites {
		skin := skins.Skin(sp.Key)
		clr := skin.RGBA()
		if sp.Tint != core.ColorDefault {
			clr = paletteRGBA(sp.Tint)
		}
		r := project(sp.Box, snap)
		switch sp.Kind {
		case scene.KindCoin, scene.KindBomb:
			radius := math.Min(r.W, r.H) / 2
			vector.DrawFilledCircle(dst, float32(r.X+r.W/2), float32(r.Y+r.H/2), float32(radius), clr, true)
		case scene.KindPlayer:
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
			drawFacing(dst, r, sp.Frame)
		default:
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
			vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, color.RGBA{0, 0, 0, 0x40}, false)
		}
	}
}

// drawSky scatters the sky pattern's glyphs as dots, scrolled by offset.
func drawSky(dst *ebiten.Image, sky theme.Skin, offset float64) {
	pattern := []rune(sky.Glyph)
	n := len(pattern)
	if n == 0 {
		return
	}
	clr := paletteRGBA(sky.Color)
	shift := int(offset) / skyCell
	frac := float32(int(offset) % skyCell)
	for cy := 0; cy*skyCell < ScreenHeight; cy++ {
		for cx := 0; cx*skyCell <= ScreenWidth; cx++ {
			i := ((cx+shift+cy*7)%n + n) % n
			if pattern[i] == ' ' {
				continue
			}
			x := float32(cx*skyCell) - frac
			vector.DrawFilledRect(dst, x, float32(cy*skyCell), 2, 2, clr, false)
		}
	}
}

// drawFacing marks the player's eyes so the spritesheet frame shows which
// way it runs: frames 0-3 left, 4 facing the camera, 5-8 right.
func drawFacing(dst *ebiten.Image, r viewRect, frame int) {
	eye := color.RGBA{0xff, 0xff, 0xff, 0xff}
	size := float32(r.W / 5)
	y := float32(r.Y + r.H/4)
	switch {
	case frame < 4:
		vector.DrawFilledRect(dst, float32(r.X)+size/2, y, size, size, eye, false)
	case frame > 4:
		vector.DrawFilledRect(dst, float32(r.X+r.W)-size*3/2, y, size, size, eye, false)
	default:
		vector.DrawFilledRect(dst, float32(r.X)+size, y, size, size, eye, false)
		vector.DrawFilledRect(dst, float32(r.X+r.W)-size*2, y, size, size, eye, false)
	}
}
