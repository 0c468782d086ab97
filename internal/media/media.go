package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// MaxPhotoWidth is the width compressed photos are capped at. Narrower
// images are stored as-is.
const MaxPhotoWidth = 800

// Store is the media pipeline: it fetches or receives an image, parks it
// in temporary storage and writes a resized copy into permanent storage.
type Store struct {
	tempDir  string
	photoDir string
	namer    Namer
	client   *http.Client
}

func NewStore(tempDir, photoDir string, namer Namer) *Store {
	return &Store{
		tempDir:  tempDir,
		photoDir: photoDir,
		namer:    namer,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// PhotoDir exposes the permanent storage root so the router can serve it.
func (s *Store) PhotoDir() string {
	return s.photoDir
}

// UploadByLink downloads the image at link into temporary storage, writes
// a compressed copy into permanent storage and returns its generated name.
func (s *Store) UploadByLink(ctx context.Context, link, userName string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", &FetchError{Link: link, Err: err}
	}

	ext := path.Ext(parsed.Path)
	if ext == "" {
		ext = ".jpg"
	}

	tempName := s.namer.TempName(userName, ext)
	tempPath := filepath.Join(s.tempDir, tempName)

	if err := s.fetch(ctx, link, tempPath); err != nil {
		return "", err
	}
	defer os.Remove(tempPath)

	photoName := s.namer.PhotoName(userName, ext)
	if err := s.compress(tempPath, filepath.Join(s.photoDir, photoName)); err != nil {
		return "", err
	}

	return photoName, nil
}

// UploadFromDevice compresses each uploaded file into permanent storage
// and returns the generated names in input order. A file that fails to
// decode is recorded in a BatchError without aborting the rest.
func (s *Store) UploadFromDevice(ctx context.Context, files []*multipart.FileHeader, userName string) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	batchErr := &BatchError{}
	fileNames := []string{}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return fileNames, ctx.Err()
		default:
		}

		ext := filepath.Ext(file.Filename)
		tempPath := filepath.Join(s.tempDir, s.namer.TempName(userName, ext))

		if err := saveUploadedFile(file, tempPath); err != nil {
			batchErr.AddFile(file.Filename, err)
			continue
		}

		photoName := s.namer.PhotoName(userName, ext)
		err := s.compress(tempPath, filepath.Join(s.photoDir, photoName))
		os.Remove(tempPath)
		if err != nil {
			batchErr.AddFile(file.Filename, err)
			continue
		}

		fileNames = append(fileNames, photoName)
	}

	if batchErr.Count() > 0 {
		return fileNames, batchErr
	}
	return fileNames, nil
}

// DeletePhotos best-effort removes permanent files. Missing files are
// skipped; other failures are collected and returned, none aborts the rest.
func (s *Store) DeletePhotos(names []string) []string {
	var failed []string
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		err := os.Remove(filepath.Join(s.photoDir, filepath.Base(name)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
		}
	}
	return failed
}

func (s *Store) fetch(ctx context.Context, link, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return &FetchError{Link: link, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &FetchError{Link: link, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Link: link, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return &FetchError{Link: link, Err: fmt.Errorf("not an image: %s", ct)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return &FetchError{Link: link, Err: err}
	}

	return nil
}

// compress resizes src to at most MaxPhotoWidth preserving aspect ratio
// and the original format, then writes it to dest.
func (s *Store) compress(src, dest string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return &CompressionError{File: filepath.Base(src), Err: err}
	}

	if img.Bounds().Dx() > MaxPhotoWidth {
		img = imaging.Resize(img, MaxPhotoWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, dest); err != nil {
		return &CompressionError{File: filepath.Base(dest), Err: err}
	}

	return nil
}

func saveUploadedFile(file *multipart.FileHeader, dest string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write temp file: %v", err)
	}

	return nil
}
