//go:build !linux

package affinity

type noopController struct{}

func newPlatformController() Controller {
	return noopController{}
}

func (noopController) PinToCore(int) error    { return ErrUnsupported }
func (noopController) ResetAffinity() error   { return nil }
func (noopController) ElevatePriority() error { return ErrUnsupported }
func (noopController) ResetPriority() error   { return nil }
