package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	versionDelimiter = "."

	majorWeight = 100000
	minorWeight = 1000

	defaultMaxMajor = 99
	defaultMaxMinor = 99
	defaultMaxPatch = 997

	// defaultPatch is odd so an implicit patch always denotes a pre-release build.
	defaultPatch = 1
)

// patchSuffixPattern matches everything from the first non-digit of the patch component.
var patchSuffixPattern = regexp.MustCompile(`[^0-9].*`)

// VersionCaps bounds each version component accepted by ParseVersionNumberWithCaps.
type VersionCaps struct {
	MaxMajor int `mapstructure:"max_major"`
	MaxMinor int `mapstructure:"max_minor"`
	MaxPatch int `mapstructure:"max_patch"`
}

// DefaultVersionCaps returns the caps that keep build codes strictly ordered.
func DefaultVersionCaps() VersionCaps {
	return VersionCaps{
		MaxMajor: defaultMaxMajor,
		MaxMinor: defaultMaxMinor,
		MaxPatch: defaultMaxPatch,
	}
}

// VersionNumber is an immutable major.minor.patch triple. Increments return new values.
type VersionNumber struct {
	major int
	minor int
	patch int
}

// NewVersionNumber builds a VersionNumber without validating it against any cap.
func NewVersionNumber(major, minor, patch int) VersionNumber {
	return VersionNumber{major: major, minor: minor, patch: patch}
}

// ParseVersionNumber parses text using DefaultVersionCaps.
func ParseVersionNumber(text string) (VersionNumber, error) {
	return ParseVersionNumberWithCaps(text, DefaultVersionCaps())
}

// ParseVersionNumberWithCaps parses "major[.minor[.patch]]".
//
// Minor defaults to 0 and patch defaults to 1. Anything after the first
// non-digit of the patch component is dropped, so "3.4.5-rc1" reads as 3.4.5.
// Components above their cap are rejected, never clamped.
func ParseVersionNumberWithCaps(text string, caps VersionCaps) (VersionNumber, error) {
	parts := strings.SplitN(text, versionDelimiter, 3) //nolint:mnd // major, minor, patch

	major, err := parseComponent("major", parts[0], text)
	if err != nil {
		return VersionNumber{}, err
	}

	minor := 0
	if len(parts) > 1 {
		if minor, err = parseComponent("minor", parts[1], text); err != nil {
			return VersionNumber{}, err
		}
	}

	patch := defaultPatch
	if len(parts) > 2 { //nolint:mnd // patch present
		patchText := patchSuffixPattern.ReplaceAllString(parts[2], "")
		if patch, err = parseComponent("patch", patchText, text); err != nil {
			return VersionNumber{}, err
		}
	}

	version := NewVersionNumber(major, minor, patch)
	if capErr := version.checkCaps(caps); capErr != nil {
		return VersionNumber{}, capErr
	}
	return version, nil
}

func parseComponent(name, value, text string) (int, error) {
	number, err := strconv.Atoi(value)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(value, "-") {
		return 0, fmt.Errorf("%w: %s component %q of %q is too large",
			ErrVersionComponentOutOfRange, name, value, text)
	}
	if err != nil || number < 0 {
		return 0, fmt.Errorf("%w: %s component %q of %q is not a non-negative integer",
			ErrInvalidVersionFormat, name, value, text)
	}
	return number, nil
}

func (v VersionNumber) checkCaps(caps VersionCaps) error {
	if v.major > caps.MaxMajor {
		return fmt.Errorf("%w: major version greater than %d not supported: %d",
			ErrVersionComponentOutOfRange, caps.MaxMajor, v.major)
	}
	if v.minor > caps.MaxMinor {
		return fmt.Errorf("%w: minor version greater than %d not supported: %d",
			ErrVersionComponentOutOfRange, caps.MaxMinor, v.minor)
	}
	if v.patch > caps.MaxPatch {
		return fmt.Errorf("%w: patch version greater than %d not supported: %d",
			ErrVersionComponentOutOfRange, caps.MaxPatch, v.patch)
	}
	return nil
}

func (v VersionNumber) Major() int { return v.major }
func (v VersionNumber) Minor() int { return v.minor }
func (v VersionNumber) Patch() int { return v.patch }

// Name renders "major.minor.patch".
func (v VersionNumber) Name() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// ShortName renders "major.minor".
func (v VersionNumber) ShortName() string {
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// BuildCode encodes the version as major*100000 + minor*1000 + patch.
func (v VersionNumber) BuildCode() int {
	return v.major*majorWeight + v.minor*minorWeight + v.patch
}

// IsRelease reports whether the build code is even.
func (v VersionNumber) IsRelease() bool {
	return v.BuildCode()%2 == 0
}

// IsDebug reports whether the build code is odd.
func (v VersionNumber) IsDebug() bool {
	return !v.IsRelease()
}

// NextPatch adds increment to the patch component.
func (v VersionNumber) NextPatch(increment int) VersionNumber {
	return NewVersionNumber(v.major, v.minor, v.patch+increment)
}

// NextMinor adds increment to the minor component and resets patch to newPatch.
func (v VersionNumber) NextMinor(increment, newPatch int) VersionNumber {
	return NewVersionNumber(v.major, v.minor+increment, newPatch)
}

// NextMajor adds increment to the major component and resets the others.
func (v VersionNumber) NextMajor(increment, newMinor, newPatch int) VersionNumber {
	return NewVersionNumber(v.major+increment, newMinor, newPatch)
}

func (v VersionNumber) String() string {
	return fmt.Sprintf("%s (%d)", v.Name(), v.BuildCode())
}
