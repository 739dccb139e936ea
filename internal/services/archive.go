package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
)

// FeedArchiver conserve une copie brute de chaque flux d'import dans un
// bucket MinIO, pour pouvoir rejouer ou auditer un import après coup.
// Optionnel : un FeedArchiver nil ne fait rien. Jamais sur le chemin
// critique de l'import.
type FeedArchiver struct {
	client *minio.Client
	bucket string
}

func NewFeedArchiver(client *minio.Client, bucket string) *FeedArchiver {
	return &FeedArchiver{client: client, bucket: bucket}
}

// Archive dépose le flux brut sous imports/<horodatage>_<nom>.
func (a *FeedArchiver) Archive(filename string, raw []byte) {
	if a == nil || a.client == nil {
		return
	}

	object := fmt.Sprintf("imports/%s_%s", time.Now().UTC().Format("20060102T150405"), filename)
	_, err := a.client.PutObject(context.Background(), a.bucket, object,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		log.Println("⚠️ Archivage du flux d'import impossible:", err)
		return
	}
	log.Println("🪣 Flux d'import archivé :", object)
}
