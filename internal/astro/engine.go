package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/aalrahma/athan/internal/prayer"
)

// sunriseAngle is the solar-disk elevation used for sunrise and sunset,
// accounting for refraction and the disk's apparent radius.
const sunriseAngle = -0.833

// PolarDayError reports that a required hour angle is undefined for the
// day: at high latitudes near the solstices the sun never reaches the
// depression angle a prayer needs, so no time exists. Callers fall back
// to another source rather than computing a partial table.
type PolarDayError struct {
	Event     prayer.Name
	Latitude  float64
	DayOfYear int
}

func (e *PolarDayError) Error() string {
	return fmt.Sprintf("no %s time at latitude %.4f on day %d: sun never reaches the required angle",
		e.Event, e.Latitude, e.DayOfYear)
}

// ComputeTimes computes the six daily times for the given date and
// coordinates under the given calculation method, in local clock time.
//
// Maghrib is taken symmetric with sunrise around solar noon. That ignores
// the evening/morning refraction difference; it is the reference behavior
// and is kept, not corrected.
//
// Returns a *PolarDayError when any required hour angle is undefined; in
// that case no table is returned at all.
func ComputeTimes(date time.Time, lat, lon float64, m prayer.Method) (prayer.Times, error) {
	doy := date.YearDay()
	decl := Declination(doy)
	eqt := EquationOfTime(doy)
	latRad := radians(lat)

	// Solar noon in local clock hours: mean noon shifted by the
	// longitude correction (4 min/degree) and the equation of time.
	noon := 12 - lon*4/60 + eqt/60

	fajrHA, err := hourAngle(m.FajrAngle, latRad, decl)
	if err != nil {
		return nil, &PolarDayError{Event: prayer.Fajr, Latitude: lat, DayOfYear: doy}
	}

	sunHA, err := hourAngle(sunriseAngle, latRad, decl)
	if err != nil {
		return nil, &PolarDayError{Event: prayer.Sunrise, Latitude: lat, DayOfYear: doy}
	}

	asrHA, err := asrHourAngle(latRad, decl)
	if err != nil {
		return nil, &PolarDayError{Event: prayer.Asr, Latitude: lat, DayOfYear: doy}
	}

	maghrib := noon + sunHA

	var isha float64
	if m.IshaOffsetMin > 0 {
		isha = maghrib + float64(m.IshaOffsetMin)/60
	} else {
		ishaHA, err := hourAngle(m.IshaAngle, latRad, decl)
		if err != nil {
			return nil, &PolarDayError{Event: prayer.Isha, Latitude: lat, DayOfYear: doy}
		}
		isha = noon + ishaHA
	}

	return prayer.Times{
		prayer.Fajr:    clockFromHours(noon - fajrHA),
		prayer.Sunrise: clockFromHours(noon - sunHA),
		prayer.Dhuhr:   clockFromHours(noon),
		prayer.Asr:     clockFromHours(noon + asrHA),
		prayer.Maghrib: clockFromHours(maghrib),
		prayer.Isha:    clockFromHours(isha),
	}, nil
}

// errBelowHorizon marks an arccosine argument outside [-1, 1].
var errBelowHorizon = fmt.Errorf("hour angle undefined")

// hourAngle returns, in clock hours, the angular offset from solar noon
// at which the sun reaches the named angle: a positive twilight
// depression for Fajr and Isha, or the signed disk elevation for sunrise.
func hourAngle(angleDeg, latRad, decl float64) (float64, error) {
	cosH := (-math.Sin(radians(angleDeg)) - math.Sin(latRad)*math.Sin(decl)) /
		(math.Cos(latRad) * math.Cos(decl))
	if cosH < -1 || cosH > 1 {
		return 0, errBelowHorizon
	}
	return degrees(math.Acos(cosH)) / 15, nil
}

// asrHourAngle returns the afternoon hour angle at which an object's
// shadow reaches twice its height plus its noon shadow.
func asrHourAngle(latRad, decl float64) (float64, error) {
	elevation := math.Atan(1 / (2 + math.Tan(math.Abs(latRad-decl))))
	cosH := (math.Sin(elevation) - math.Sin(latRad)*math.Sin(decl)) /
		(math.Cos(latRad) * math.Cos(decl))
	if cosH < -1 || cosH > 1 {
		return 0, errBelowHorizon
	}
	return degrees(math.Acos(cosH)) / 15, nil
}

// clockFromHours converts decimal clock hours to a Clock, wrapping modulo
// 24. Values can leave [0, 24) before wrapping: Fajr at extreme
// longitudes lands before midnight, Isha after it.
func clockFromHours(h float64) prayer.Clock {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	hh := int(h)
	mm := int((h - float64(hh)) * 60)
	return prayer.Clock{Hour: hh, Minute: mm}
}
