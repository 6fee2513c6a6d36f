package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/acarlisle/figuredraw/config"
	"github.com/acarlisle/figuredraw/util"
)

const remoteCheckInterval = time.Duration(1 * time.Hour)

// RemoteManager mirrors a shared pose pack bucket into the library's
// remote pack. Without a configured bucket it stays dormant.
type RemoteManager struct {
	client *s3.Client

	profile  string
	s3Bucket string

	outputPath string

	Updated chan bool
}

func NewRemoteManager(cfg *config.Config) (*RemoteManager, error) {
	r := &RemoteManager{
		Updated: make(chan bool),
	}

	if !cfg.HasRemotePacks() || !cfg.HasLibrary() {
		return r, nil
	}

	r.profile = cfg.AWSProfile
	r.s3Bucket = cfg.S3Bucket
	r.outputPath = filepath.Join(cfg.LibraryDir, remotePackDirName)

	// Load the Shared AWS Configuration (~/.aws/config)
	ctxCfg, cancelCfg := context.WithTimeout(context.Background(), time.Duration(3*time.Second))
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctxCfg,
		awsconfig.WithSharedConfigProfile(cfg.AWSProfile),
	)
	cancelCfg()
	if err != nil {
		return nil, err
	}

	r.client = s3.NewFromConfig(awsCfg)

	return r, nil
}

func (r *RemoteManager) enabled() bool {
	return r.client != nil
}

func (r *RemoteManager) GetS3Objects(ctx context.Context) ([]s3types.Object, error) {
	// Get the first page of results for ListObjectsV2 for a bucket
	output, err := r.client.ListObjectsV2(
		ctx,
		&s3.ListObjectsV2Input{
			Bucket: aws.String(r.s3Bucket),
		},
	)
	if err != nil {
		return nil, err
	}

	return output.Contents, nil
}

func (r *RemoteManager) DownloadObject(ctx context.Context, name string) error {
	downloader := manager.NewDownloader(r.client)

	f, err := os.Create(filepath.Join(r.outputPath, name))
	if err != nil {
		return fmt.Errorf("unable to create file for s3 download, %s, %w", name, err)
	}
	defer f.Close()

	if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(r.s3Bucket),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("unable to download object from s3, %s, %w", name, err)
	}
	return nil
}

func (r *RemoteManager) getLocalFiles() (mapset.Set[string], error) {
	dirs, err := os.ReadDir(r.outputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory, %s, %w", r.outputPath, err)
	}

	localFiles := mapset.NewSet[string]()
	for dir := range slices.Values(dirs) {
		name := dir.Name()
		if !util.IsSupportedImage(name) {
			continue
		}
		localFiles.Add(name)
	}

	return localFiles, nil
}

func (r *RemoteManager) getRemoteFiles(ctx context.Context) (mapset.Set[string], error) {
	remoteFiles := mapset.NewSet[string]()
	objects, err := r.GetS3Objects(ctx)
	if err != nil {
		return nil, err
	}
	for object := range slices.Values(objects) {
		name := aws.ToString(object.Key)
		if !util.IsSupportedImage(name) {
			continue
		}
		// Nested keys cannot land in the flat remote pack
		if strings.Contains(name, "/") {
			continue
		}
		remoteFiles.Add(name)
	}

	if remoteFiles.Cardinality() == 0 {
		slog.Info("no remote files found")
	}
	return remoteFiles, nil
}

// SyncFolder makes the remote pack match the bucket, deleting local files
// the bucket no longer has and downloading new ones.
func (r *RemoteManager) SyncFolder(ctx context.Context) error {
	if err := os.MkdirAll(r.outputPath, 0o755); err != nil {
		return fmt.Errorf("unable to create remote pack directory, %s, %w", r.outputPath, err)
	}

	localFiles, err := r.getLocalFiles()
	if err != nil {
		return err
	}

	remoteFiles, err := r.getRemoteFiles(ctx)
	if err != nil {
		return err
	}

	toDelete := localFiles.Difference(remoteFiles).ToSlice()
	toDownload := remoteFiles.Difference(localFiles).ToSlice()
	if len(toDelete) > 0 {
		slog.Info("deleting local files", "count", len(toDelete), "names", toDelete)
		for name := range slices.Values(toDelete) {
			filePath := filepath.Join(r.outputPath, name)
			if err := os.Remove(filePath); err != nil {
				slog.Warn("unable to remove local file", "error", err)
			}
		}
	}
	if len(toDownload) > 0 {
		slog.Info("adding files", "count", len(toDownload), "names", toDownload)
		for name := range slices.Values(toDownload) {
			if err := r.DownloadObject(ctx, name); err != nil {
				slog.Warn("error while downloading s3 object", "name", name, "error", err)
				continue
			}
		}
	}

	// Only signal update if there were actual changes
	if len(toDelete) > 0 || len(toDownload) > 0 {
		select {
		case r.Updated <- true:
		default:
			// Channel is full, skip
		}
	}
	return nil
}

func (r *RemoteManager) Run() {
	if !r.enabled() {
		slog.Info("remote pack sync disabled")
		return
	}

	ticker := time.NewTicker(remoteCheckInterval)

	// Initial sync
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(30*time.Minute))
	if err := r.SyncFolder(ctx); err != nil {
		slog.Warn("error while syncing with remote", "error", err)
	}
	cancel()

	for range ticker.C {
		ctx, cancel = context.WithTimeout(context.Background(), time.Duration(30*time.Minute))
		if err := r.SyncFolder(ctx); err != nil {
			slog.Warn("error while syncing with remote", "error", err)
		}
		cancel()
	}
}
