package processor

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"webpify/pkg/imgutil"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// optimizedMethod is the slowest libwebp method, which gives the smallest files.
const optimizedMethod = 6

// OutputPath appends ext to src, keeping the source extension.
func OutputPath(src, ext string) string {
	return src + "." + ext
}

func convertJob(job Job, opts Options) Result {
	res := Result{
		Path:    job.Path,
		Display: job.Display,
		Output:  OutputPath(job.Path, opts.OutputExt),
	}

	file, err := os.Open(job.Path)
	if err != nil {
		res.Err = err
		return res
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		res.Err = err
		return res
	}
	res.SourceBytes = info.Size()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		return res
	}
	if kind == imgutil.KindUnknown {
		res.Err = ErrUnsupportedFormat
		return res
	}
	res.Kind = kind

	img, err := decodeImage(file, kind, opts.AutoOrient)
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", kind, err)
		return res
	}

	size, err := writeWebP(res.Output, flattenRGB(img), job.Quality, opts.Optimize)
	if err != nil {
		res.Err = err
		return res
	}
	res.OutputBytes = size
	return res
}

func decodeImage(rs io.ReadSeeker, kind imgutil.Kind, autoOrient bool) (image.Image, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(rs)
	if err != nil {
		return nil, err
	}

	if autoOrient && kind == imgutil.KindJPEG {
		if orientation, err := readOrientation(rs); err == nil {
			img = applyOrientation(img, orientation)
		}
	}
	return img, nil
}

// flattenRGB returns an opaque 8-bit copy of img. The alpha channel is
// discarded rather than composited: stored color values are kept and every
// pixel is made fully opaque. This is lossy for images with transparency.
func flattenRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// writeWebP encodes img next to dest and renames it into place, so a failed
// encode never leaves a truncated output behind. It returns the output size.
func writeWebP(dest string, img image.Image, quality int, optimize bool) (int64, error) {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return 0, fmt.Errorf("encoder options (quality %d): %w", quality, err)
	}
	if optimize {
		options.Method = optimizedMethod
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".webpify-*.tmp")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpFile.Name())

	bw := bufio.NewWriter(tmpFile)
	if err := webp.Encode(bw, img, options); err != nil {
		_ = tmpFile.Close()
		return 0, fmt.Errorf("encode webp: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpFile.Name(), dest); err != nil {
		return 0, err
	}

	outInfo, err := os.Stat(dest)
	if err != nil {
		return 0, err
	}
	return outInfo.Size(), nil
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
