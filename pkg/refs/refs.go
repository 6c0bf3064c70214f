// Package refs manages the ref namespace of a pasdb repository: HEAD,
// branches under refs/heads/, and tags under refs/tags/. It lives entirely
// outside pkg/pas — refs are small plain-text files on the host
// filesystem, addressing objectstore.ID values the same way a Git ref
// addresses a commit SHA.
//
// Grounded on original_source/jgit/refs.h's operation set: no pack example
// owns "read and rewrite a one-line text file", so this package uses only
// the standard library. Ref files are rewritten in place with
// os.WriteFile; a rewrite is not atomic.
package refs

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marmos91/pasdb/pkg/objectstore"
)

const headRefPrefix = "ref: refs/heads/"

// Refs manages the refs/ namespace rooted at dir (a ".pasdb"-style
// directory, analogous to jgit's ".jgit/").
type Refs struct {
	dir string
}

// New wraps an existing refs root at dir.
func New(dir string) *Refs {
	return &Refs{dir: dir}
}

// Init creates an empty ref namespace at dir: refs/heads/, refs/tags/, and
// a HEAD file that symbolically points at refs/heads/main.
func Init(dir string) (*Refs, error) {
	if err := os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0755); err != nil {
		return nil, fmt.Errorf("refs: create heads dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "refs", "tags"), 0755); err != nil {
		return nil, fmt.Errorf("refs: create tags dir: %w", err)
	}

	headPath := filepath.Join(dir, "HEAD")
	if _, err := os.Stat(headPath); os.IsNotExist(err) {
		if err := writeFile(headPath, headRefPrefix+"main\n"); err != nil {
			return nil, fmt.Errorf("refs: create HEAD: %w", err)
		}
	}

	return New(dir), nil
}

// CurrentBranch returns the branch name HEAD symbolically points at, and
// false if HEAD is detached (points directly at an object id).
func (r *Refs) CurrentBranch() (string, bool) {
	content, err := readFile(filepath.Join(r.dir, "HEAD"))
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(content, headRefPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(content, headRefPrefix)), true
}

// SetHead makes HEAD a symbolic ref pointing at branch.
func (r *Refs) SetHead(branch string) error {
	return writeFile(filepath.Join(r.dir, "HEAD"), headRefPrefix+branch+"\n")
}

// SetHeadDetached makes HEAD point directly at id, bypassing any branch.
func (r *Refs) SetHeadDetached(id objectstore.ID) error {
	return writeFile(filepath.Join(r.dir, "HEAD"), id.Hex()+"\n")
}

// Resolve follows HEAD (through its symbolic branch ref, if any) down to
// an objectstore.ID. The bool result is false if the repository has no
// commits yet under the resolved ref.
func (r *Refs) Resolve() (objectstore.ID, bool) {
	content, err := readFile(filepath.Join(r.dir, "HEAD"))
	if err != nil {
		return objectstore.ID{}, false
	}

	if strings.HasPrefix(content, "ref: ") {
		refPath := strings.TrimSpace(strings.TrimPrefix(content, "ref: "))
		return r.readRef(filepath.Join(r.dir, filepath.FromSlash(refPath)))
	}

	return parseID(strings.TrimSpace(content))
}

// BranchTip returns the id a branch currently points at.
func (r *Refs) BranchTip(name string) (objectstore.ID, bool) {
	return r.readRef(filepath.Join(r.dir, "refs", "heads", name))
}

// UpdateRef creates or overwrites a branch ref to point at id.
func (r *Refs) UpdateRef(name string, id objectstore.ID) error {
	return r.writeRef(filepath.Join(r.dir, "refs", "heads", name), id)
}

// DeleteBranch removes a branch ref. A no-op if it does not exist.
func (r *Refs) DeleteBranch(name string) error {
	return deleteRef(filepath.Join(r.dir, "refs", "heads", name))
}

// ListBranches returns all branch names in sorted order.
func (r *Refs) ListBranches() []string {
	return listRefs(filepath.Join(r.dir, "refs", "heads"))
}

// TagTarget returns the id a tag points at.
func (r *Refs) TagTarget(name string) (objectstore.ID, bool) {
	return r.readRef(filepath.Join(r.dir, "refs", "tags", name))
}

// SetTag creates or overwrites a tag to point at id.
func (r *Refs) SetTag(name string, id objectstore.ID) error {
	return r.writeRef(filepath.Join(r.dir, "refs", "tags", name), id)
}

// DeleteTag removes a tag. A no-op if it does not exist.
func (r *Refs) DeleteTag(name string) error {
	return deleteRef(filepath.Join(r.dir, "refs", "tags", name))
}

// ListTags returns all tag names in sorted order.
func (r *Refs) ListTags() []string {
	return listRefs(filepath.Join(r.dir, "refs", "tags"))
}

func (r *Refs) readRef(path string) (objectstore.ID, bool) {
	content, err := readFile(path)
	if err != nil {
		return objectstore.ID{}, false
	}
	return parseID(strings.TrimSpace(content))
}

func (r *Refs) writeRef(path string, id objectstore.ID) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("refs: create parent dir for %s: %w", path, err)
	}
	return writeFile(path, id.Hex()+"\n")
}

func deleteRef(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("refs: delete %s: %w", path, err)
	}
	return nil
}

func listRefs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func parseID(hexStr string) (objectstore.ID, bool) {
	var id objectstore.ID
	if len(hexStr) != len(id)*2 {
		return objectstore.ID{}, false
	}
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return objectstore.ID{}, false
	}
	copy(id[:], decoded)
	return id, true
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeFile overwrites path's content, creating it if necessary.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
