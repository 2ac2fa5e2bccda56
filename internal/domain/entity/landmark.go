package entity

import (
	"fmt"
	"math"
)

// PartID идентификатор точки скелета (имена как у MediaPipe Pose)
type PartID string

const (
	PartNose          PartID = "NOSE"
	PartLeftEye       PartID = "LEFT_EYE"
	PartRightEye      PartID = "RIGHT_EYE"
	PartLeftEar       PartID = "LEFT_EAR"
	PartRightEar      PartID = "RIGHT_EAR"
	PartLeftShoulder  PartID = "LEFT_SHOULDER"
	PartRightShoulder PartID = "RIGHT_SHOULDER"
	PartLeftElbow     PartID = "LEFT_ELBOW"
	PartRightElbow    PartID = "RIGHT_ELBOW"
	PartLeftWrist     PartID = "LEFT_WRIST"
	PartRightWrist    PartID = "RIGHT_WRIST"
	PartLeftHip       PartID = "LEFT_HIP"
	PartRightHip      PartID = "RIGHT_HIP"
	PartLeftKnee      PartID = "LEFT_KNEE"
	PartRightKnee     PartID = "RIGHT_KNEE"
	PartLeftAnkle     PartID = "LEFT_ANKLE"
	PartRightAnkle    PartID = "RIGHT_ANKLE"
)

// Landmark нормализованная точка скелета: X и Y в долях ширины и высоты кадра.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Valid сообщает, что координаты конечные числа.
func (l Landmark) Valid() bool {
	return !math.IsNaN(l.X) && !math.IsNaN(l.Y) && !math.IsInf(l.X, 0) && !math.IsInf(l.Y, 0)
}

// Pose набор точек скелета, найденных детектором на одном кадре.
type Pose map[PartID]Landmark

// Require возвращает точку или ErrMissingLandmark.
func (p Pose) Require(part PartID) (Landmark, error) {
	lm, ok := p[part]
	if !ok {
		return Landmark{}, fmt.Errorf("%w: %s", ErrMissingLandmark, part)
	}
	if !lm.Valid() {
		return Landmark{}, fmt.Errorf("%w: %s has non-finite coordinates", ErrMissingLandmark, part)
	}
	return lm, nil
}

// Shoulders возвращает левое и правое плечо.
func (p Pose) Shoulders() (left, right Landmark, err error) {
	if left, err = p.Require(PartLeftShoulder); err != nil {
		return Landmark{}, Landmark{}, err
	}
	if right, err = p.Require(PartRightShoulder); err != nil {
		return Landmark{}, Landmark{}, err
	}
	return left, right, nil
}
