package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/config"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// DatasetController serves dataset metadata and reload operations
type DatasetController struct {
	datasets *services.DatasetService
	importer *services.ImporterService
}

// NewDatasetController creates a dataset controller
func NewDatasetController(datasets *services.DatasetService, importer *services.ImporterService) *DatasetController {
	return &DatasetController{datasets: datasets, importer: importer}
}

// GetMeta handles GET /api/v1/dataset/meta - returns the snapshot version,
// row count, date bounds and the category/channel lists, all derived from
// the loaded table
func (ctrl *DatasetController) GetMeta(c *gin.Context) {
	snapshot := ctrl.datasets.Snapshot()
	if snapshot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATASET_NOT_LOADED",
				"message": "No dataset has been loaded yet",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshot,
	})
}

// Reload handles POST /api/v1/dataset/reload - re-imports the dataset from
// the configured source and swaps in a fresh snapshot
func (ctrl *DatasetController) Reload(c *gin.Context) {
	cfg := config.GetConfig()

	receipt, err := ImportFromConfiguredSource(ctrl.importer, cfg)
	if err != nil {
		log.Printf("Dataset reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATASET_ERROR",
				"message": "Failed to import the dataset from its source",
			},
		})
		return
	}

	if err := ctrl.datasets.Load(receipt.Source); err != nil {
		log.Printf("Snapshot refresh failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to refresh the dataset snapshot",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"import":   receipt,
			"snapshot": ctrl.datasets.Snapshot(),
		},
	})
}

// ImportFromConfiguredSource imports the dataset from S3 when a dataset key
// is configured, otherwise from the local CSV path
func ImportFromConfiguredSource(importer *services.ImporterService, cfg *config.Config) (*models.ImportReceipt, error) {
	if cfg.UsesS3Dataset() {
		s3Service := services.GetS3Service()
		body, err := s3Service.DownloadObject(cfg.DatasetS3Key)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := body.Close(); closeErr != nil {
				log.Printf("warning: failed to close S3 object body: %v", closeErr)
			}
		}()
		return importer.Import(body, s3Service.ObjectURL(cfg.DatasetS3Key))
	}

	return importer.ImportFile(cfg.DatasetPath)
}
