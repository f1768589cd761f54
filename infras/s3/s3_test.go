package s3

import (
	"testing"

	"hotelos/config"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name         string
		publicDomain string
		apiEndpoint  string
		want         string
	}{
		{
			name:         "public domain",
			publicDomain: "https://files.hotel.test/",
			apiEndpoint:  "https://account.r2.cloudflarestorage.com",
			want:         "https://files.hotel.test/invoices/INV-2024-000001.html",
		},
		{
			name:        "path style fallback",
			apiEndpoint: "http://minio:9000/",
			want:        "http://minio:9000/hotel-docs/invoices/INV-2024-000001.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.External.S3.PublicDomain = tt.publicDomain
			cfg.External.S3.APIEndpoint = tt.apiEndpoint
			cfg.External.S3.BucketName = "hotel-docs"

			svc := &s3Impl{Config: cfg}

			assert.Equal(t, tt.want, svc.publicURL(svc.bucket(""), "invoices/INV-2024-000001.html"))
		})
	}
}
