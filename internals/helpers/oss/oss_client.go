// internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	slug "absensiwajah_backend/internals/helpers"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Service (arsip file sesi absensi)
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "absensi/"
}

// Configured true kalau ENV ALI_OSS_* lengkap (arsip opsional).
func Configured() bool {
	return getEnv("ALI_OSS_ENDPOINT") != "" && getEnv("ALI_OSS_ACCESS_KEY") != "" &&
		getEnv("ALI_OSS_SECRET_KEY") != "" && getEnv("ALI_OSS_BUCKET") != ""
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := normalizeEndpoint(getEnv("ALI_OSS_ENDPOINT"))
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// normalizeEndpoint: endpoint tanpa skema → https.
func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ep
	}
	if strings.HasPrefix(ep, "http://") || strings.HasPrefix(ep, "https://") {
		return ep
	}
	return "https://" + ep
}

/* =======================================================================
   Upload & Delete
======================================================================= */

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
	)
}

func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.Bucket.DeleteObjects(keys, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx))
	return err
}

// ObjectKey gabung prefix + bagian-bagian (tiap bagian di-slugify kecuali
// bagian terakhir = nama file asli).
func (s *OSSService) ObjectKey(parts ...string) string {
	clean := make([]string, 0, len(parts)+1)
	if s.Prefix != "" {
		clean = append(clean, s.Prefix)
	}
	for i, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p == "" {
			continue
		}
		if i < len(parts)-1 {
			p = slug.Slugify(p, 80)
		}
		clean = append(clean, p)
	}
	return strings.Join(clean, "/")
}

/* =======================================================================
   Session archiver
======================================================================= */

// SessionArchiver upload file sesi CSV ke OSS setelah disimpan:
// <prefix>/<subject-slug>/<yyyy>/<file>.csv
type SessionArchiver struct {
	Svc     *OSSService
	Timeout time.Duration
}

func NewSessionArchiver(svc *OSSService) *SessionArchiver {
	return &SessionArchiver{Svc: svc, Timeout: 30 * time.Second}
}

func (a *SessionArchiver) Archive(ctx context.Context, subject, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	key := a.Svc.ObjectKey("sessions", subject, time.Now().Format("2006"), filepath.Base(path))
	if err := a.Svc.UploadStream(ctx, key, f, "text/csv; charset=utf-8"); err != nil {
		return "", err
	}
	return key, nil
}
