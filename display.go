package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// showResults opens the intensity map in a square window of the given size
// and the cut plot in a second window, and blocks until they are closed.
func showResults(title string, mapImg, plotImg image.Image, size int) {
	// The ID is needed by the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.optbeam")

	w := myApp.NewWindow(title)
	w.SetPadded(false)
	w.CenterOnScreen()

	img := canvas.NewImageFromImage(mapImg)
	img.FillMode = canvas.ImageFillContain
	w.SetContent(container.NewStack(img))
	w.Resize(fyne.Size{Height: float32(size), Width: float32(size)})
	w.Show()

	cut := canvas.NewImageFromImage(plotImg)
	cut.FillMode = canvas.ImageFillContain
	cut.SetMinSize(fyne.NewSize(1200, 500))

	w2 := myApp.NewWindow("Intensity across the beam at the waist")
	w2.SetContent(container.NewCenter(cut))
	w2.Resize(fyne.NewSize(950, 550))
	w2.Show()

	w.ShowAndRun()
}
