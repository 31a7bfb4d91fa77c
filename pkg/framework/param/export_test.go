package param

// HoldAddLock blocks Add on r until release is called
func HoldAddLock(r *Registry) (release func()) {
	r.mu.Lock()
	return r.mu.Unlock
}
