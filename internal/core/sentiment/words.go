package sentiment

var polarity = map[string]float64{
	"good":      0.7,
	"great":     0.8,
	"awesome":   1.0,
	"amazing":   0.6,
	"love":      0.5,
	"loved":     0.7,
	"lovely":    0.5,
	"like":      0.2,
	"nice":      0.6,
	"happy":     0.8,
	"glad":      0.5,
	"fun":       0.3,
	"funny":     0.25,
	"cute":      0.5,
	"sweet":     0.35,
	"beautiful": 0.85,
	"best":      1.0,
	"better":    0.5,
	"perfect":   1.0,
	"excited":   0.4,
	"thanks":    0.2,
	"thank":     0.2,
	"cool":      0.35,
	"wonderful": 1.0,
	"yay":       0.6,
	"haha":      0.2,
	"lol":       0.8,
	"miss":      0.1,
	"proud":     0.8,
	"okay":      0.5,
	"ok":        0.5,
	"fine":      0.4,
	"bad":       -0.7,
	"worse":     -0.4,
	"worst":     -1.0,
	"hate":      -0.8,
	"sad":       -0.5,
	"angry":     -0.5,
	"annoying":  -0.8,
	"annoyed":   -0.4,
	"terrible":  -1.0,
	"awful":     -1.0,
	"horrible":  -1.0,
	"boring":    -1.0,
	"tired":     -0.4,
	"sick":      -0.7,
	"sorry":     -0.5,
	"upset":     -0.4,
	"hurt":      -0.3,
	"stupid":    -0.8,
	"wrong":     -0.5,
	"ugh":       -0.5,
	"dead":      -0.2,
	"cry":       -0.3,
	"crying":    -0.3,
	"lonely":    -0.5,
	"mad":       -0.6,
	"scared":    -0.5,
	"worried":   -0.3,
	"late":      -0.3,
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"so":         1.2,
	"super":      1.4,
	"extremely":  1.5,
	"totally":    1.2,
	"too":        1.1,
	"absolutely": 1.4,
}

var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"don't":   true,
	"dont":    true,
	"didn't":  true,
	"isn't":   true,
	"wasn't":  true,
	"can't":   true,
	"cant":    true,
	"won't":   true,
	"aren't":  true,
	"doesn't": true,
}
