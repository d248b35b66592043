//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoAudio struct {
	tone *pwmTone
}

func newTinyGoAudio() Audio {
	return &tinyGoAudio{tone: newPWMTone(machine.GP2)}
}

func (a *tinyGoAudio) Tone() Tone {
	if a.tone == nil {
		return nil
	}
	return a.tone
}

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	SetPeriod(period uint64) error
	Enable(enable bool)
}

// pwmTone drives a piezo with a 50% square wave at the tone pitch.
type pwmTone struct {
	pin machine.Pin
	pwm pwmDevice
	ch  uint8

	configured bool
}

func newPWMTone(pin machine.Pin) *pwmTone {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	return &pwmTone{pin: pin, pwm: pwm}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (t *pwmTone) Start(freqHz uint32) error {
	if t == nil || t.pwm == nil || freqHz == 0 {
		return ErrNotImplemented
	}
	period := uint64(1e9) / uint64(freqHz)
	if !t.configured {
		if err := t.pwm.Configure(machine.PWMConfig{Period: period}); err != nil {
			return err
		}
		ch, err := t.pwm.Channel(t.pin)
		if err != nil {
			return err
		}
		t.ch = ch
		t.configured = true
	} else if err := t.pwm.SetPeriod(period); err != nil {
		return err
	}
	t.pwm.Set(t.ch, t.pwm.Top()/2)
	t.pwm.Enable(true)
	return nil
}

func (t *pwmTone) Stop() error {
	if t == nil || t.pwm == nil || !t.configured {
		return nil
	}
	t.pwm.Set(t.ch, 0)
	t.pwm.Enable(false)
	return nil
}
