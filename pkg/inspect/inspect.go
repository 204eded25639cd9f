// Package inspect walks every page of a B-Tree file without modifying it and
// reports what each page holds.
package inspect

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-chidb/pkg/btree"

	"github.com/OneOfOne/xxhash"
)

// PageInfo describes one page. Err is set instead of the node fields when
// the page does not decode as a node, e.g. allocated but never written.
type PageInfo struct {
	Number      uint32
	Digest      uint64
	Type        btree.NodeType
	NCells      uint16
	FreeOffset  uint16
	CellsOffset uint16
	RightPage   uint16
	FreeSpace   int
	Err         error
}

type Report struct {
	Header btree.Header
	Pages  []PageInfo
}

// Inspect reads pages 1..PageCount of tree. Only I/O errors abort the walk,
// pages that fail to decode are recorded in their PageInfo.
func Inspect(tree *btree.BTree) (*Report, error) {
	r := &Report{
		Header: tree.Header(),
		Pages:  make([]PageInfo, 0, tree.PageCount()),
	}

	for n := uint32(1); n <= tree.PageCount(); n++ {
		page, err := tree.ReadPage(n)
		if err != nil {
			return nil, err
		}

		info := PageInfo{
			Number: n,
			Digest: Digest(page.Raw()),
		}

		node, err := btree.LoadNode(page)
		if err != nil {
			info.Err = err
		} else {
			info.Type = node.Type()
			info.NCells = node.NCells()
			info.FreeOffset = node.FreeOffset()
			info.CellsOffset = node.CellsOffset()
			info.RightPage = node.RightPage()
			info.FreeSpace = node.FreeSpace()
		}

		r.Pages = append(r.Pages, info)
	}

	return r, nil
}

// Digest hashes raw page bytes so two files can be compared page by page.
func Digest(raw []byte) uint64 {
	h := xxhash.New64()
	h.Write(raw)
	return h.Sum64()
}

// Changed returns the numbers of the pages whose digest differs between a
// and b, including pages present in only one of them.
func Changed(a, b *Report) []uint32 {
	var changed []uint32

	for i := 0; i < len(a.Pages) || i < len(b.Pages); i++ {
		if i >= len(a.Pages) || i >= len(b.Pages) || a.Pages[i].Digest != b.Pages[i].Digest {
			changed = append(changed, uint32(i+1))
		}
	}
	return changed
}

func (r *Report) WriteHeader(w io.Writer) error {
	h := r.Header
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "magic\t%q\n", h.Magic[:])
	fmt.Fprintf(tw, "page size\t%d\n", h.PageSize)
	fmt.Fprintf(tw, "file change counter\t%d\n", h.FileChangeCounter)
	fmt.Fprintf(tw, "schema version\t%d\n", h.SchemaVersion)
	fmt.Fprintf(tw, "page cache size\t%d\n", h.PageCacheSize)
	fmt.Fprintf(tw, "user cookie\t%d\n", h.UserCookie)
	fmt.Fprintf(tw, "pages\t%d\n", len(r.Pages))
	return tw.Flush()
}

func (r *Report) WritePages(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tTYPE\tCELLS\tFREE OFFSET\tCELLS OFFSET\tRIGHT\tFREE SPACE\tDIGEST")
	for _, p := range r.Pages {
		if p.Err != nil {
			fmt.Fprintf(tw, "%d\t-\t-\t-\t-\t-\t-\t%016x\t%v\n", p.Number, p.Digest, p.Err)
			continue
		}
		fmt.Fprintf(tw, "%d\t%v\t%d\t%d\t%d\t%d\t%d\t%016x\n",
			p.Number, p.Type, p.NCells, p.FreeOffset, p.CellsOffset, p.RightPage, p.FreeSpace, p.Digest)
	}
	return tw.Flush()
}
