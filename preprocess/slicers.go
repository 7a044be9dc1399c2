package preprocess

import (
	"strconv"
	"strings"
)

// dialect handles the object markers of one family of slicers.
type dialect interface {
	// startScan registers the interests for the first pass, which finds the objects.
	startScan(pr *processor)
	// startOutput registers the interests for the second pass, which writes the
	// cancellation markers.
	startOutput(pr *processor)
	// header is written before the first line of the output.
	header(pr *processor) error
}

type slicer struct {
	name       string
	marker     string
	newDialect func() dialect
}

// Slic3r, Kisslicer and Kiri:Moto do not write object markers; Simplify3D
// processes are not supported.
var slicers = []slicer{
	{name: "superslicer", marker: "; generated by SuperSlicer", newDialect: newSlic3r},
	{name: "prusaslicer", marker: "; generated by PrusaSlicer", newDialect: newSlic3r},
	{name: "slic3r", marker: "; generated by Slic3r", newDialect: newSlic3r},
	{name: "cura", marker: ";Generated with Cura_SteamEngine", newDialect: newCura},
	{name: "ideamaker", marker: ";Sliced by ideaMaker", newDialect: newIdeaMaker},
	{name: "m486", marker: "M486", newDialect: newM486},
}

// afterColon returns what follows the first colon in line, trimmed.
func afterColon(line string) string {
	_, val, _ := strings.Cut(line, ":")
	return strings.TrimSpace(val)
}

// Slic3r, PrusaSlicer and SuperSlicer:
//   ; printing object cube_id_0_copy_0
//   ; stop printing object cube_id_0_copy_0

type slic3r struct{}

func newSlic3r() dialect {
	return slic3r{}
}

func slic3rObjectID(line string) string {
	_, id, _ := strings.Cut(line, "printing object")
	return strings.TrimSpace(id)
}

func (slic3r) startScan(pr *processor) {
	pr.registerInterest("; printing object ", func(line string) error {
		id := slic3rObjectID(line)
		return pr.startObject(id, id)
	})
	pr.registerInterest("; stop printing object ", func(line string) error {
		pr.stopObject()
		return nil
	})
}

func (slic3r) startOutput(pr *processor) {
	pr.registerInterest("; printing object ", func(line string) error {
		err := pr.outputStart(slic3rObjectID(line))
		if err != nil {
			return err
		}
		return pr.emit(line)
	})
	pr.registerInterest("; stop printing object ", func(line string) error {
		err := pr.outputEnd()
		if err != nil {
			return err
		}
		return pr.emit(line)
	})
}

func (slic3r) header(pr *processor) error {
	return pr.outputDefinitions()
}

// Cura:
//   ;MESH:cube.stl
//   ;MESH:NONMESH
//   ;TIME_ELAPSED:1234.5
// The last TIME_ELAPSED comment follows the last object of the print.

const curaNonMesh = "NONMESH"

type cura struct {
	lastElapsed string
}

func newCura() dialect {
	return &cura{}
}

func (c *cura) startScan(pr *processor) {
	c.lastElapsed = ""
	pr.registerInterest(";MESH:", func(line string) error {
		name := afterColon(line)
		if name == curaNonMesh {
			pr.stopObject()
			return nil
		}
		return pr.startObject(name, name)
	})
	pr.registerInterest(";TIME_ELAPSED:", func(line string) error {
		c.lastElapsed = strings.TrimSpace(line)
		return nil
	})
}

func (c *cura) startOutput(pr *processor) {
	pr.registerInterest(";MESH:", func(line string) error {
		var err error
		name := afterColon(line)
		if name == curaNonMesh {
			err = pr.outputEnd()
		} else {
			err = pr.outputStart(name)
		}
		if err != nil {
			return err
		}
		return pr.emit(line)
	})
	pr.registerInterest(";TIME_ELAPSED:", func(line string) error {
		if strings.TrimSpace(line) == c.lastElapsed {
			err := pr.outputEnd()
			if err != nil {
				return err
			}
		}
		return pr.emit(line)
	})
}

func (c *cura) header(pr *processor) error {
	return pr.outputDefinitions()
}

// ideaMaker:
//   ;TOTAL_NUM: 4
//   ;PRINTING: test_bed_part0.3mf
//   ;PRINTING_ID: 0
//   ;REMAINING_TIME: 0
// A PRINTING_ID of -1 is used for the internal non-object meshes.

type ideaMaker struct {
	name string
}

func newIdeaMaker() dialect {
	return &ideaMaker{}
}

func (im *ideaMaker) startScan(pr *processor) {
	im.name = "unknown"
	pr.registerInterest(";PRINTING:", func(line string) error {
		im.name = afterColon(line)
		return nil
	})
	pr.registerInterest(";PRINTING_ID:", func(line string) error {
		id := afterColon(line)
		if id == "-1" {
			pr.stopObject()
			return nil
		}
		return pr.startObject(id, im.name)
	})
}

func (im *ideaMaker) startOutput(pr *processor) {
	pr.registerInterest(";TOTAL_NUM:", func(line string) error {
		err := pr.emit(line)
		if err != nil {
			return err
		}
		return pr.outputDefinitions()
	})
	pr.registerInterest(";PRINTING_ID:", func(line string) error {
		var err error
		id := afterColon(line)
		if id == "-1" {
			err = pr.outputEnd()
		} else {
			err = pr.outputStart(id)
		}
		if err != nil {
			return err
		}
		return pr.emit(line)
	})
	pr.registerInterest(";REMAINING_TIME: 0", func(line string) error {
		err := pr.outputEnd()
		if err != nil {
			return err
		}
		return pr.emit(line)
	})
}

func (im *ideaMaker) header(pr *processor) error {
	return nil
}

// M486 (Marlin object labels):
//   M486 T4   ; four objects, 0 to 3
//   M486 S1   ; printing object 1
//   M486 S-1  ; not printing an object
// The M486 commands are commented out in the output.

type m486 struct{}

func newM486() dialect {
	return m486{}
}

// m486Params returns the arguments of an M486 command, keyed by upper case letter.
func m486Params(line string) map[string]string {
	line, _, _ = strings.Cut(line, ";")
	fields := strings.Fields(line)
	params := map[string]string{}
	if len(fields) == 0 {
		return params
	}
	for _, param := range fields[1:] {
		if key, val, ok := strings.Cut(param, "="); ok {
			params[strings.ToUpper(key)] = val
		} else {
			params[strings.ToUpper(param[:1])] = param[1:]
		}
	}
	return params
}

func (m486) startScan(pr *processor) {
	pr.registerInterest("M486", func(line string) error {
		params := m486Params(line)
		if t, ok := params["T"]; ok {
			cnt, err := strconv.Atoi(t)
			if err != nil {
				pr.logger.Warn("bad M486 object count", "line", strings.TrimSpace(line))
				return nil
			}
			for odx := 0; odx < cnt; odx += 1 {
				id := strconv.Itoa(odx)
				if _, err := pr.defineObject(id, id); err != nil {
					return err
				}
			}
		} else if id, ok := params["S"]; ok {
			if id == "-1" {
				pr.stopObject()
				return nil
			}
			return pr.startObject(id, id)
		}
		return nil
	})
}

func (m486) startOutput(pr *processor) {
	pr.registerInterest("M486", func(line string) error {
		var err error
		params := m486Params(line)
		if _, ok := params["T"]; ok {
			err = pr.outputDefinitions()
		} else if id, ok := params["S"]; ok {
			if id == "-1" {
				err = pr.outputEnd()
			} else {
				err = pr.outputStart(id)
			}
		}
		if err != nil {
			return err
		}
		return pr.emit("; " + line)
	})
}

func (m486) header(pr *processor) error {
	return nil
}
