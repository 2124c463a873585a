package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/mas-patas/patitas/internal/domain"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100

	maxLabels     = 20
	minConfidence = 70.0

	errCodeAccessDenied     = "AccessDeniedException"
	errCodeInvalidParameter = "InvalidParameterException"
)

// colorWords are the coat colors we recognize among the returned labels.
var colorWords = []string{
	"black", "white", "brown", "gray", "grey", "golden",
	"orange", "tan", "cream", "spotted", "striped", "brindle",
}

// RekognitionAPI is the subset of the AWS Rekognition client the detector
// uses, extracted so tests can stub it.
type RekognitionAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Detector implements LabelDetector using AWS Rekognition DetectLabels.
type Detector struct {
	api RekognitionAPI
}

// Ensure Detector implements LabelDetector at compile time
var _ LabelDetector = (*Detector)(nil)

// NewDetector creates a Rekognition-backed detector.
// It uses the AWS default credential chain to authenticate.
func NewDetector(ctx context.Context, region string) (*Detector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Detector{api: rekognition.NewFromConfig(awsCfg)}, nil
}

// NewDetectorWithAPI builds a detector around an existing API client.
func NewDetectorWithAPI(api RekognitionAPI) *Detector {
	return &Detector{api: api}
}

// validateImage checks if image data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) == 0 {
		return ErrInvalidImage
	}
	if len(image) < minImageSize {
		return fmt.Errorf("%w: image too small (%d bytes, minimum %d)", ErrInvalidImage, len(image), minImageSize)
	}
	if len(image) > maxImageSize {
		return fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, len(image), maxImageSize)
	}
	return nil
}

// Analyze runs DetectLabels on the photo and distills the labels into a
// report suggestion. Confidence is the detector's confidence in the species
// label, zero when no species was recognized.
func (d *Detector) Analyze(ctx context.Context, image []byte) (*Suggestion, error) {
	if err := validateImage(image); err != nil {
		return nil, err
	}

	input := &rekognition.DetectLabelsInput{
		Image: &types.Image{
			Bytes: image,
		},
		MaxLabels:     aws.Int32(maxLabels),
		MinConfidence: aws.Float32(minConfidence),
	}

	output, err := d.api.DetectLabels(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeAccessDenied:
				return nil, fmt.Errorf("detect labels: %w", ErrInvalidCredentials)
			case errCodeInvalidParameter:
				return nil, fmt.Errorf("%w: %s", ErrInvalidImage, apiErr.ErrorMessage())
			}
		}
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	return distill(output.Labels), nil
}

// distill maps raw Rekognition labels to a Suggestion: the species from the
// strongest dog/cat/animal label, coat colors from the known color words,
// everything else carried through verbatim for the client to show.
func distill(labels []types.Label) *Suggestion {
	s := &Suggestion{}

	for _, label := range labels {
		if label.Name == nil {
			continue
		}
		name := *label.Name
		confidence := float64(aws.ToFloat32(label.Confidence))
		s.Labels = append(s.Labels, name)

		lower := strings.ToLower(name)
		switch {
		case lower == "dog" && (s.Species == "" || s.Species == domain.SpeciesOther || confidence > s.Confidence):
			s.Species = domain.SpeciesDog
			s.Confidence = confidence
		case lower == "cat" && (s.Species == "" || s.Species == domain.SpeciesOther || confidence > s.Confidence):
			s.Species = domain.SpeciesCat
			s.Confidence = confidence
		case (lower == "animal" || lower == "pet") && s.Species == "":
			s.Species = domain.SpeciesOther
			s.Confidence = confidence
		}

		for _, color := range colorWords {
			if lower == color && !containsFold(s.Colors, color) {
				s.Colors = append(s.Colors, color)
			}
		}
	}

	return s
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
