package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"wirespin/app"
	"wirespin/scene"
	"wirespin/scene/gltfasset"
)

func main() {
	var (
		shape   = flag.String("shape", "donut", "Shape to write: "+strings.Join(app.ShapeNames(), "|")+".")
		outPath = flag.String("out", "", "Output file (.glb for binary glTF, anything else for .gltf JSON).")
		major   = flag.Float64("major", 1, "Torus ring radius (torus only).")
		minor   = flag.Float64("minor", 0.38, "Torus tube radius (torus only).")
		segU    = flag.Int("segu", 32, "Torus ring segments (torus only).")
		segV    = flag.Int("segv", 16, "Torus tube segments (torus only).")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mkmesh -shape donut|torus|tetrahedron|cube -out out.glb [-major 1 -minor 0.38 -segu 32 -segv 16]")
	}

	var root scene.AssetNode
	if strings.EqualFold(*shape, "torus") {
		if *segU*(*segV) > 1<<16 {
			fatalf("torus: %d vertices do not fit 16-bit indices", *segU*(*segV))
		}
		root = app.Torus("Torus", float32(*major), float32(*minor), *segU, *segV)
	} else {
		var ok bool
		if root, ok = app.ShapeByName(*shape); !ok {
			fatalf("unknown shape: %s", *shape)
		}
	}

	if err := gltfasset.Save(*outPath, root); err != nil {
		fatalf("save: %v", err)
	}
	fmt.Printf("wrote %s (%s)\n", *outPath, root.Name)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
