package testbench

import "fmt"

// ContainerKind tags one of the FIFO implementations under test.
type ContainerKind int

const (
	Baseline ContainerKind = iota + 1
	Linked
	Ring
)

// ContainerOrder is the order containers appear in within a report section.
var ContainerOrder = []ContainerKind{Baseline, Linked, Ring}

func (k ContainerKind) String() string {
	switch k {
	case Baseline:
		return "baseline"
	case Linked:
		return "linked"
	case Ring:
		return "ring"
	default:
		return fmt.Sprintf("ContainerKind(%d)", int(k))
	}
}

// ParseContainerKind is the inverse of ContainerKind.String.
func ParseContainerKind(s string) (ContainerKind, error) {
	for _, k := range ContainerOrder {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("testbench: container kind %q: %w", s, ErrUnsupportedKind)
}

// ElementKind tags the type of value pushed through a container.
type ElementKind int

const (
	Integer ElementKind = iota + 1
	Float
	Object
)

// ReportOrder is the order element kinds are benchmarked and reported in.
var ReportOrder = []ElementKind{Float, Object, Integer}

func (k ElementKind) String() string {
	switch k {
	case Integer:
		return "int"
	case Float:
		return "float"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// ParseElementKind is the inverse of ElementKind.String.
func ParseElementKind(s string) (ElementKind, error) {
	for _, k := range ReportOrder {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("testbench: element kind %q: %w", s, ErrUnsupportedKind)
}
