/*
Package pigment is a layered raster paint engine. It keeps a stack of RGBA
layers, stamps brush masks along pointer strokes, flood fills regions, records
every pixel edit for undo and redo, and persists documents either in a native
JSON format preserving the layers or as flat images.

The package provides a command line interface converting documents between the
supported formats and opening an interactive preview window. To check the
supported commands type:

	$ pigment --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"image"
		"log"

		"github.com/esimov/pigment"
	)

	func main() {
		e, err := pigment.NewEditor(pigment.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}

		e.Pointer(pigment.PointerEvent{Pos: image.Pt(10, 10), Phase: pigment.Press})
		e.Pointer(pigment.PointerEvent{Pos: image.Pt(60, 40), Phase: pigment.Drag})
		e.Pointer(pigment.PointerEvent{Pos: image.Pt(60, 40), Phase: pigment.Release})

		if err := e.Save("sketch.pigment"); err != nil {
			log.Fatal(err)
		}
	}
*/
package pigment
