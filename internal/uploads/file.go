package uploads

import (
	"context"
	"fmt"
	"math/rand/v2"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var allowedTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// File is an accepted upload that has been written to storage. Ownership
// passes to the operation that receives it: on failure the operation calls
// Discard, on success the stored name is kept.
type File struct {
	Name        string
	ContentType string
	Size        int64

	receiver *Receiver
}

// Discard deletes the stored file. Failures are logged and never returned.
// Discard is safe to call on a nil File.
func (f *File) Discard(ctx context.Context) {
	if f == nil || f.receiver == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	if err := f.receiver.Remove(ctx, f.Name); err != nil {
		f.receiver.logger.Error("failed to discard upload", "name", f.Name, "error", err)
		return
	}
	f.receiver.logger.Info("upload discarded", "name", f.Name)
}

func allowedType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return slices.Contains(allowedTypes, strings.ToLower(mediaType))
}

func generateName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%d%s", prefix, time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}

func validName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, `/\`) &&
		name != "." && name != ".."
}
