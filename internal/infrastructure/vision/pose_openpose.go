//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// OpenPoseDetector ищет скелет сетью OpenPose (COCO, 18 точек) через gocv DNN.
type OpenPoseDetector struct {
	mu            sync.Mutex
	net           gocv.Net
	InputSize     int
	MinConfidence float32
}

// NewOpenPoseDetector загружает модель (caffemodel + prototxt или .pb).
func NewOpenPoseDetector(modelPath, configPath string) (*OpenPoseDetector, error) {
	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load pose model %s", modelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, err
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, err
	}
	return &OpenPoseDetector{
		net:           net,
		InputSize:     368,
		MinConfidence: 0.1,
	}, nil
}

// Detect запускает сеть и берёт максимум каждой тепловой карты.
func (d *OpenPoseDetector) Detect(ctx context.Context, img image.Image) (entity.Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(d.InputSize, d.InputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	// gocv.Net не потокобезопасен
	d.mu.Lock()
	d.net.SetInput(blob, "")
	prob := d.net.Forward("")
	d.mu.Unlock()
	defer prob.Close()

	pose := make(entity.Pose, len(cocoParts))
	for idx, part := range cocoParts {
		heat := gocv.GetBlobChannel(prob, 0, idx)
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(heat)
		cols, rows := heat.Cols(), heat.Rows()
		heat.Close()

		if maxVal < d.MinConfidence || cols == 0 || rows == 0 {
			continue
		}
		pose[part] = entity.Landmark{
			X:          (float64(maxLoc.X) + 0.5) / float64(cols),
			Y:          (float64(maxLoc.Y) + 0.5) / float64(rows),
			Visibility: float64(maxVal),
		}
	}

	if len(pose) == 0 {
		return nil, entity.ErrNoBodyDetected
	}
	return pose, nil
}

// Close освобождает сеть.
func (d *OpenPoseDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// cocoParts индексы выходных карт OpenPose COCO. Индекс 1 (шея) не нужен.
var cocoParts = map[int]entity.PartID{
	0:  entity.PartNose,
	2:  entity.PartRightShoulder,
	3:  entity.PartRightElbow,
	4:  entity.PartRightWrist,
	5:  entity.PartLeftShoulder,
	6:  entity.PartLeftElbow,
	7:  entity.PartLeftWrist,
	8:  entity.PartRightHip,
	9:  entity.PartRightKnee,
	10: entity.PartRightAnkle,
	11: entity.PartLeftHip,
	12: entity.PartLeftKnee,
	13: entity.PartLeftAnkle,
	14: entity.PartRightEye,
	15: entity.PartLeftEye,
	16: entity.PartRightEar,
	17: entity.PartLeftEar,
}

var _ port.PoseDetector = (*OpenPoseDetector)(nil)
