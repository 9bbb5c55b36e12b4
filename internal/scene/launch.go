package scene

// TouchControls is handed to the UI once the scene has been created so the
// on-screen control surface can drive the player.
type TouchControls struct {
	Left  func(isDown bool)
	Right func(isDown bool)
	Up    func()
}

// LaunchData is the single object passed across the UI/engine boundary.
// The scene copies it at init time; replacing it on a running Game only
// takes effect at the next restart.
type LaunchData struct {
	OnScoreUpdate     func(score int)
	OnGameOver        func()
	OnPause           func()
	OnControlsCreated func(controls TouchControls)

	ThemeID   int
	CoinScale float64
	BombScale float64
}

func (d LaunchData) scoreUpdate(score int) {
	if d.OnScoreUpdate != nil {
		d.OnScoreUpdate(score)
	}
}

func (d LaunchData) gameOver() {
	if d.OnGameOver != nil {
		d.OnGameOver()
	}
}

func (d LaunchData) pause() {
	if d.OnPause != nil {
		d.OnPause()
	}
}

func (d LaunchData) controlsCreated(c TouchControls) {
	if d.OnControlsCreated != nil {
		d.OnControlsCreated(c)
	}
}
