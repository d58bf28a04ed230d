package app

import (
	"github.com/vk/stepmill/internal/registry"
	"github.com/vk/stepmill/modules/accumulator"
	"github.com/vk/stepmill/modules/linear"
	"github.com/vk/stepmill/modules/source"
)

// coreModules is the definitive list of component-kind modules compiled
// into the stepmill binary.
var coreModules = []registry.Module{
	&source.Module{},
	&linear.Module{},
	&accumulator.Module{},
}
