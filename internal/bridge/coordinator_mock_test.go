package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
	"github.com/specialistvlad/beanbridge/internal/registry"
	"github.com/specialistvlad/beanbridge/internal/registry/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegister_InfoFailureWithMockedPrimary(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockServer(ctrl)
	secondary := mocks.NewMockServer(ctrl)
	ctx := context.Background()
	name := beanid.MustParse("domain:name=D")
	bean := &Widget{}

	gomock.InOrder(
		primary.EXPECT().Register(gomock.Any(), bean, name).Return(registry.Instance{Name: name}, nil),
		primary.EXPECT().Info(gomock.Any(), name).Return(beaninfo.Info{}, errors.New("metadata unavailable")),
	)
	// The secondary registry must not be touched.
	secondary.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	coord := New(primary, WithSecondary(secondary))
	inst, err := coord.Register(ctx, bean, name)

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, OpRegister, regErr.Op)
	assert.True(t, inst.Name.Equal(name))
	assert.Empty(t, coord.Shadowed())

	primary.EXPECT().IsRegistered(gomock.Any(), name).Return(true)
	assert.True(t, coord.IsRegistered(ctx, name))
}

func TestUnregister_NotFoundDoesNotTouchSecondary(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockServer(ctrl)
	secondary := mocks.NewMockServer(ctrl)
	name := beanid.MustParse("domain:name=Ghost")

	primary.EXPECT().Unregister(gomock.Any(), name).Return(registry.ErrNotFound)
	secondary.EXPECT().Unregister(gomock.Any(), gomock.Any()).Times(0)

	coord := New(primary, WithSecondary(secondary))
	err := coord.Unregister(context.Background(), name)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestUnregister_ShadowFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockServer(ctrl)
	secondary := mocks.NewMockServer(ctrl)
	ctx := context.Background()
	name := beanid.MustParse("domain:name=E")
	bean := &Widget{}
	info, err := beaninfo.Introspect(bean)
	require.NoError(t, err)

	gomock.InOrder(
		primary.EXPECT().Register(gomock.Any(), bean, name).Return(registry.Instance{Name: name}, nil),
		primary.EXPECT().Info(gomock.Any(), name).Return(info, nil),
		secondary.EXPECT().Register(gomock.Any(), gomock.Any(), name).Return(registry.Instance{Name: name}, nil),
		primary.EXPECT().Unregister(gomock.Any(), name).Return(nil),
		secondary.EXPECT().Unregister(gomock.Any(), name).Return(errors.New("secondary offline")),
	)

	coord := New(primary, WithSecondary(secondary))
	_, err = coord.Register(ctx, bean, name)
	require.NoError(t, err)
	require.Len(t, coord.Shadowed(), 1)

	err = coord.Unregister(ctx, name)
	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, OpUnregister, regErr.Op)
	// The association is gone even though the secondary refused.
	assert.Empty(t, coord.Shadowed())
}
