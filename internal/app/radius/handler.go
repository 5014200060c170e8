package radius

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"go.uber.org/zap"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"

	"github.com/fatflowers/hotspot/internal/models"
)

const requestTimeout = 5 * time.Second

// Mikrotik-Total-Limit vendor-specific attribute (vendor 14988, type 17).
const (
	mikrotikVendorID   = 14988
	mikrotikTotalLimit = 17
)

// VoucherStore is the slice of the voucher registry the authentication
// handler needs.
type VoucherStore interface {
	Verify(ctx context.Context, code string) (*models.Voucher, error)
	Redeem(ctx context.Context, code string) (*models.Voucher, error)
}

// Handler authorizes Access-Requests against the voucher registry. The
// User-Name attribute carries the voucher code; User-Password may be
// present but plays no part in authorization. Every failure path ends
// in a bare Access-Reject so the wire never distinguishes not-found
// from used from expired.
type Handler struct {
	vouchers VoucherStore
	log      *zap.SugaredLogger
}

func NewHandler(vouchers VoucherStore, log *zap.SugaredLogger) *Handler {
	return &Handler{vouchers: vouchers, log: log}
}

func (h *Handler) ServeRADIUS(w radius.ResponseWriter, r *radius.Request) {
	// Undecodable or mis-authenticated datagrams never reach this
	// point; the packet server drops them without a response. Anything
	// that is not an Access-Request is dropped the same way.
	if r.Code != radius.CodeAccessRequest {
		h.log.Debugw("ignoring non-access-request", "code", r.Code, "remote", r.RemoteAddr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	code, err := rfc2865.UserName_LookupString(r.Packet)
	if err != nil || code == "" {
		h.log.Infow("access denied, request carries no identity", "remote", r.RemoteAddr)
		h.reject(w, r)
		return
	}

	log := h.log.With("voucher_code", code, "remote", r.RemoteAddr)

	voucher, err := h.vouchers.Verify(ctx, code)
	if err != nil {
		log.Infow("access denied", "reason", err)
		h.reject(w, r)
		return
	}

	// The atomic UNUSED -> USED flip is the real authorization gate;
	// losing it to a concurrent request is a denial like any other.
	if _, err := h.vouchers.Redeem(ctx, code); err != nil {
		log.Infow("access denied, redemption lost", "reason", err)
		h.reject(w, r)
		return
	}

	resp := r.Response(radius.CodeAccessAccept)
	if err := attachSessionAttributes(resp, voucher.EffectivePackage()); err != nil {
		// The voucher is spent either way; a malformed Accept would be
		// worse than a denial.
		log.Errorw("failed to encode accept attributes", "err", err)
		h.reject(w, r)
		return
	}

	if err := w.Write(resp); err != nil {
		log.Errorw("failed to send access-accept", "err", err)
		return
	}
	log.Infow("access granted", "voucher_id", voucher.ID)
}

func (h *Handler) reject(w radius.ResponseWriter, r *radius.Request) {
	if err := w.Write(r.Response(radius.CodeAccessReject)); err != nil {
		h.log.Errorw("failed to send access-reject", "err", err)
	}
}

// attachSessionAttributes adds Session-Timeout (seconds) and the
// Mikrotik data cap for bounded packages; unbounded packages get a bare
// Accept.
func attachSessionAttributes(resp *radius.Packet, pkg *models.Package) error {
	if pkg == nil {
		return nil
	}
	if secs := pkg.SessionSeconds(); secs > 0 {
		if err := rfc2865.SessionTimeout_Set(resp, rfc2865.SessionTimeout(secs)); err != nil {
			return err
		}
	}
	if cap := pkg.DataCapBytes(); cap > 0 {
		// The attribute is 32-bit; larger caps saturate it.
		if cap > math.MaxUint32 {
			cap = math.MaxUint32
		}
		if err := addMikrotikTotalLimit(resp, uint32(cap)); err != nil {
			return err
		}
	}
	return nil
}

func addMikrotikTotalLimit(p *radius.Packet, limit uint32) error {
	vsa := make(radius.Attribute, 10)
	binary.BigEndian.PutUint32(vsa[0:4], mikrotikVendorID)
	vsa[4] = mikrotikTotalLimit
	vsa[5] = 6 // vendor type + vendor length + 4 value bytes
	binary.BigEndian.PutUint32(vsa[6:10], limit)
	p.Attributes.Add(rfc2865.VendorSpecific_Type, vsa)
	return nil
}
