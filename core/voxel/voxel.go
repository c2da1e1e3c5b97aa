// core/voxel/voxel.go
package voxel

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Header is the first line of a Visual KARSYS voxel export:
//
//	XMIN=… XMAX=… YMIN=… YMAX=… ZMIN=… ZMAX=… NUMBERX=… NUMBERY=… NUMBERZ=… NOVALUE=…
type Header struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	NX, NY, NZ int
	NoValue    int
}

// Grid is a dense voxel model. Each cell carries the stratigraphic rank and
// the id of the groundwater body occupying it (0 = none).
type Grid struct {
	Header
	ranks []int32
	gwbs  []int32
}

var headerKeys = []string{"XMIN", "XMAX", "YMIN", "YMAX", "ZMIN", "ZMAX", "NUMBERX", "NUMBERY", "NUMBERZ", "NOVALUE"}

func parseHeader(line string) (Header, error) {
	parts := strings.Fields(line)
	if len(parts) != len(headerKeys) {
		return Header{}, fmt.Errorf("malformed voxel header (expected %d tokens, got %d)", len(headerKeys), len(parts))
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || !strings.EqualFold(key, headerKeys[i]) {
			return Header{}, fmt.Errorf("malformed voxel header token %q (want %s=…)", p, headerKeys[i])
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Header{}, fmt.Errorf("voxel header %s: %v", headerKeys[i], err)
		}
		vals[i] = v
	}
	h := Header{
		XMin: vals[0], XMax: vals[1],
		YMin: vals[2], YMax: vals[3],
		ZMin: vals[4], ZMax: vals[5],
		NX: int(vals[6]), NY: int(vals[7]), NZ: int(vals[8]),
		NoValue: int(vals[9]),
	}
	if h.NX <= 0 || h.NY <= 0 || h.NZ <= 0 {
		return Header{}, fmt.Errorf("voxel header has non-positive grid size %dx%dx%d", h.NX, h.NY, h.NZ)
	}
	return h, nil
}

// Parse reads a voxel export: the header line, one column caption line, then
// NX·NY·NZ data lines of "rank gwb_id" with x varying fastest.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	if !sc.Scan() {
		return nil, fmt.Errorf("voxels:1: missing header line")
	}
	h, err := parseHeader(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("voxels:1: %w", err)
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("voxels:2: missing column caption line")
	}

	n := h.NX * h.NY * h.NZ
	g := &Grid{Header: h, ranks: make([]int32, n), gwbs: make([]int32, n)}
	for i := range g.ranks {
		g.ranks[i] = int32(h.NoValue)
		g.gwbs[i] = int32(h.NoValue)
	}

	ln := 2
	count := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if count >= n {
			return nil, fmt.Errorf("voxels:%d: more data lines than header promises (%d)", ln, n)
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("voxels:%d: bad field count %d (want 2)", ln, len(f))
		}
		rank, err := strconv.ParseInt(f[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("voxels:%d: bad rank: %v", ln, err)
		}
		gwb, err := strconv.ParseInt(f[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("voxels:%d: bad gwb id: %v", ln, err)
		}
		g.ranks[count] = int32(rank)
		g.gwbs[count] = int32(gwb)
		count++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if count != n {
		return nil, fmt.Errorf("voxel count mismatch: header says %d, found %d data lines", n, count)
	}
	return g, nil
}

// index maps (x, y, z) to the flat x-fastest data order of the export.
func (g *Grid) index(x, y, z int) int {
	return x + g.NX*(y+g.NY*z)
}

// Rank returns the stratigraphic rank at the given cell.
func (g *Grid) Rank(x, y, z int) int { return int(g.ranks[g.index(x, y, z)]) }

// GWB returns the groundwater body id at the given cell (0 = none).
func (g *Grid) GWB(x, y, z int) int { return int(g.gwbs[g.index(x, y, z)]) }

// Ranks returns the sorted set of distinct ranks present in the model.
func (g *Grid) Ranks() []int {
	return distinct(g.ranks)
}

// GWBs returns the sorted set of distinct positive groundwater body ids.
func (g *Grid) GWBs() []int {
	ids := distinct(g.gwbs)
	out := ids[:0]
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func distinct(vals []int32) []int {
	seen := make(map[int32]struct{})
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, int(v))
	}
	sort.Ints(out)
	return out
}
