// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

var (
	// batas ukuran upload foto & bukti bayar (guard ringan di controller juga)
	MaxUploadSize = int64(5 * 1024 * 1024)
)

/* =======================================================================
   Konfigurasi WebP (ENV-Driven)
======================================================================= */

type WebPOptions struct {
	MaxW    int     // batas lebar (resize keep-aspect)
	MaxH    int     // batas tinggi
	Quality float32 // kualitas encode lossy
}

func defaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    envInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: envFloat("IMAGE_WEBP_QUALITY", 80),
	}
}

/* =======================================================================
   Decode gambar (jpeg/png) dari []byte dengan sniff MIME
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, errors.New("file kosong")
	}

	ctype := http.DetectContentType(all)
	switch {
	case strings.Contains(ctype, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ctype, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ctype, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback: tebak dari ekstensi
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("format gambar tidak didukung: %s", ctype)
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := math.Min(scaleW, scaleH)

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ConvertToWebP membaca multipart file, decode, resize, dan encode WebP.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(all)) > MaxUploadSize {
		return nil, errors.New("ukuran file melebihi 5MB")
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	return encodeToWebP(img, defaultWebPOptionsFromEnv())
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	BucketName string
	Endpoint   string
	Prefix     string // prefix folder, mis. "akademiku"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	ak := getEnv("OSS_ACCESS_KEY_ID")
	sk := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET_NAME")

	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, errors.New("OSS env belum lengkap (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET_NAME)")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		BucketName: bucketName,
		Endpoint:   endpoint,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// UploadAsWebP konversi file form ke WebP lalu upload.
// Return: URL publik objek.
func (s *OSSService) UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string) (string, error) {
	if fh == nil {
		return "", errors.New("file tidak ada")
	}
	if fh.Size > MaxUploadSize {
		return "", errors.New("ukuran file melebihi 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := ConvertToWebP(f, fh.Filename)
	if err != nil {
		return "", err
	}

	key := s.buildObjectKey(keyPrefix, fh.Filename)
	if err := s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
	); err != nil {
		return "", fmt.Errorf("oss put: %w", err)
	}

	return s.PublicURL(key), nil
}

// DeleteByKey hapus objek (dipakai saat rollback upload yang gagal lanjut).
func (s *OSSService) DeleteByKey(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.Bucket.DeleteObject(key)
}

func (s *OSSService) PublicURL(key string) string {
	ep := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, ep, key)
}

// KeyFromPublicURL kebalikan dari PublicURL.
func (s *OSSService) KeyFromPublicURL(publicURL string) string {
	host := fmt.Sprintf("%s.%s", s.BucketName, strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://"))
	for _, scheme := range []string{"https://", "http://"} {
		prefix := scheme + host + "/"
		if strings.HasPrefix(publicURL, prefix) {
			return strings.TrimPrefix(publicURL, prefix)
		}
	}
	return ""
}

func (s *OSSService) buildObjectKey(keyPrefix, filename string) string {
	base := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}
	ts := time.Now().Format("20060102-150405")
	parts := []string{}
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if kp := strings.Trim(keyPrefix, "/"); kp != "" {
		parts = append(parts, kp)
	}
	parts = append(parts, fmt.Sprintf("%s-%s-%s.webp", ts, base, randHex(4)))
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
